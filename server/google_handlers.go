package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/scholara/portal/auth"
	"github.com/scholara/portal/guard"
	"github.com/scholara/portal/server/authstate"
)

// GoogleBeginHandler starts the federated sign-in round trip. State
// and nonce are minted per attempt and held server-side until the
// callback returns.
func (s *Server) GoogleBeginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.google == nil {
			s.redirectLoginError(w, r, "Google sign-in is not configured", "")
			return
		}

		state := uuid.New().String()
		nonce := uuid.New().String()

		if err := s.authState.Upsert(state, &authstate.AuthState{
			Nonce:     nonce,
			CreatedAt: time.Now(),
		}); err != nil {
			log.Err(err).Msg("Failed to store sign-in state")
			s.redirectLoginError(w, r, "Could not start Google sign-in", "")
			return
		}

		http.Redirect(w, r, s.google.AuthCodeURL(state, nonce), http.StatusSeeOther)
	}
}

// GoogleCallbackHandler completes the round trip: the authorization
// code is exchanged for a verified ID token, which is then presented
// to the gateway like any other credential.
func (s *Server) GoogleCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.google == nil {
			s.redirectLoginError(w, r, "Google sign-in is not configured", "")
			return
		}

		if errParam := r.URL.Query().Get("error"); errParam != "" {
			s.redirectLoginError(w, r, "Google sign-in was cancelled", "")
			return
		}

		state := r.URL.Query().Get("state")
		code := r.URL.Query().Get("code")
		if state == "" || code == "" {
			s.redirectLoginError(w, r, "Malformed sign-in callback", "")
			return
		}

		flowState, err := s.authState.Get(state)
		if err != nil {
			s.redirectLoginError(w, r, "Sign-in session expired, please try again", "")
			return
		}
		_ = s.authState.Delete(state) // single use

		credential, err := s.google.Credential(r.Context(), code, flowState.Nonce)
		if err != nil {
			log.Err(err).Msg("Failed to verify Google credential")
			s.redirectLoginError(w, r, "Could not verify Google sign-in", "")
			return
		}

		store := s.sessionStore(r)
		authFlow := auth.NewFlow(s.gatewayClient(store), store)

		role, err := authFlow.LoginWithGoogle(r.Context(), credential)
		if err != nil {
			s.redirectLoginError(w, r, auth.FailureMessage(err), "")
			return
		}

		http.Redirect(w, r, guard.RoleHome(role), http.StatusSeeOther)
	}
}
