package server

import (
	"context"
	"net/http"

	"github.com/scholara/portal/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the request's bound session store
const ContextKeySession ContextKey = "session_store"

const sessionCookieName = "scholara_session"

// SessionMiddleware binds the session-id cookie to its Store, creating
// a fresh session when the cookie is absent, unknown or expired. Every
// handler below this middleware can rely on a non-nil Store.
func (s *Server) SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var store *session.Store

		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			store, _ = s.sessions.Get(cookie.Value)
		}
		if store == nil {
			var sid string
			sid, store = s.sessions.New()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(s.config.GetMaxSessionAge().Seconds()),
			})
		}

		ctx := context.WithValue(r.Context(), ContextKeySession, store)
		next(w, r.WithContext(ctx))
	}
}

// sessionStore returns the Store bound by SessionMiddleware. A nil
// return means the middleware did not run for this route.
func (s *Server) sessionStore(r *http.Request) *session.Store {
	store, _ := r.Context().Value(ContextKeySession).(*session.Store)
	return store
}
