// Package guard decides whether a navigation target is permitted for
// the current session. Decisions are returned as data and performed by
// the HTTP layer, never as side effects, so the policy is
// independently testable.
package guard

import "github.com/scholara/portal/session"

// Decision is the outcome of a navigation check.
type Decision int

const (
	// Allow lets the navigation proceed.
	Allow Decision = iota
	// RedirectToLogin sends the visitor to the login page.
	RedirectToLogin
	// RedirectToRoleHome sends an authenticated visitor to the
	// default landing route for their role.
	RedirectToRoleHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToRoleHome:
		return "redirect-to-role-home"
	}
	return "unknown"
}

// Role-home routes. STUDENT lands on the chatbot page, every other
// recognized role on the dashboard.
const (
	LoginRoute     = "/login"
	DashboardRoute = "/dashboard"
	ChatbotRoute   = "/chatbot"
)

// Decide evaluates a navigation to a destination permitted for the
// allowed roles against the current session store contents. It must be
// re-evaluated on every navigation, never cached: the store can change
// between navigations.
//
// No token, or a token with an absent, unparsable or unrecognized user
// record, fails closed to the login page. A recognized role outside
// the allowed set is redirected to its role-home. An empty allowed set
// admits any authenticated visitor.
func Decide(store *session.Store, allowed ...session.Role) Decision {
	if store == nil || store.AccessToken() == "" {
		return RedirectToLogin
	}

	user := store.StoredUser()
	if user == nil || !user.Role.Recognized() {
		return RedirectToLogin
	}

	if len(allowed) == 0 {
		return Allow
	}
	for _, role := range allowed {
		if user.Role == role {
			return Allow
		}
	}
	return RedirectToRoleHome
}

// RoleHome returns the default landing route for a role.
func RoleHome(role session.Role) string {
	if role == session.RoleStudent {
		return ChatbotRoute
	}
	return DashboardRoute
}

// Target resolves a decision into the path the HTTP layer should
// redirect to; Allow yields "".
func Target(decision Decision, store *session.Store) string {
	switch decision {
	case RedirectToLogin:
		return LoginRoute
	case RedirectToRoleHome:
		user := store.StoredUser()
		if user == nil {
			return LoginRoute
		}
		return RoleHome(user.Role)
	}
	return ""
}
