package server

import (
	"net/http"

	"github.com/scholara/portal/guard"
	"github.com/scholara/portal/session"
)

// RequireRoles gates a route on the session's stored role. The check
// runs on every navigation; nothing about a previous decision is
// cached. An empty role list admits any authenticated visitor.
func (s *Server) RequireRoles(allowed ...session.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			store := s.sessionStore(r)

			decision := guard.Decide(store, allowed...)
			if decision == guard.Allow {
				next(w, r)
				return
			}
			http.Redirect(w, r, guard.Target(decision, store), http.StatusSeeOther)
		}
	}
}
