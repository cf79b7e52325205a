package server

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	"github.com/scholara/portal/auth"
	"github.com/scholara/portal/gateway"
	"github.com/scholara/portal/guard"
	"github.com/scholara/portal/session"
)

const contentTypeHTML = "text/html; charset=utf-8"

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName      string
	Error        string
	Email        string // Preserve email on error
	ShowGoogle   bool
	ShowRegister bool
}

// LoginPageHandler displays the login page (GET /login). A visitor who
// already holds a valid session is sent straight to their role home.
func (s *Server) LoginPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		store := s.sessionStore(r)
		if guard.Decide(store) == guard.Allow {
			http.Redirect(w, r, guard.RoleHome(store.StoredUser().Role), http.StatusSeeOther)
			return
		}

		data := LoginPageData{
			AppName:      s.config.GetAppName(),
			Error:        r.URL.Query().Get("error"),
			Email:        r.URL.Query().Get("email"),
			ShowGoogle:   s.google != nil,
			ShowRegister: true,
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login template")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")
		if email == "" || password == "" {
			s.redirectLoginError(w, r, "Email and password are required", email)
			return
		}

		store := s.sessionStore(r)
		flow := auth.NewFlow(s.gatewayClient(store), store)

		role, err := flow.Login(r.Context(), email, password)
		if err != nil {
			s.redirectLoginError(w, r, auth.FailureMessage(err), email)
			return
		}

		http.Redirect(w, r, guard.RoleHome(role), http.StatusSeeOther)
	}
}

// RegisterPageHandler displays the self-registration page
func (s *Server) RegisterPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("register.html")
	if err != nil {
		panic("Failed to parse register template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		store := s.sessionStore(r)
		if guard.Decide(store) == guard.Allow {
			http.Redirect(w, r, guard.RoleHome(store.StoredUser().Role), http.StatusSeeOther)
			return
		}

		data := LoginPageData{
			AppName: s.config.GetAppName(),
			Error:   r.URL.Query().Get("error"),
			Email:   r.URL.Query().Get("email"),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render register template")
			http.Error(w, "Failed to render register page", http.StatusInternalServerError)
		}
	}
}

// RegisterSubmissionHandler processes the registration form. A freshly
// registered account is signed in immediately.
func (s *Server) RegisterSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		req := gateway.RegisterRequest{
			FullName: r.FormValue("fullName"),
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
			Role:     r.FormValue("role"),
		}
		if req.FullName == "" || req.Email == "" || req.Password == "" {
			redirectWithError(w, r, RouteRegister, "Full name, email and password are required")
			return
		}
		if req.Role != "" && !session.Role(req.Role).Recognized() {
			redirectWithError(w, r, RouteRegister, "Unknown role")
			return
		}

		store := s.sessionStore(r)
		flow := auth.NewFlow(s.gatewayClient(store), store)

		role, err := flow.Register(r.Context(), req)
		if err != nil {
			redirectWithError(w, r, RouteRegister, auth.FailureMessage(err))
			return
		}

		http.Redirect(w, r, guard.RoleHome(role), http.StatusSeeOther)
	}
}

// LogoutHandler clears the session and returns the visitor to the
// login page. Logging out an anonymous session is a no-op.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := s.sessionStore(r)
		flow := auth.NewFlow(s.gatewayClient(store), store)

		if err := flow.Logout(); err != nil {
			log.Err(err).Msg("Failed to clear session on logout")
		}

		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}

// redirectLoginError redirects to the login page with an error message,
// preserving the typed email
func (s *Server) redirectLoginError(w http.ResponseWriter, r *http.Request, errorMsg, email string) {
	redirectURL := RouteLogin + "?error=" + url.QueryEscape(errorMsg)
	if email != "" {
		redirectURL += "&email=" + url.QueryEscape(email)
	}
	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}

// redirectWithError helper for error redirects to any page
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(errorMsg), http.StatusSeeOther)
}
