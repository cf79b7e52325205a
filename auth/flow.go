// Package auth drives the login flow against the gateway's auth
// surface and owns the resulting session state.
package auth

import (
	"context"

	"github.com/scholara/portal/gateway"
	"github.com/scholara/portal/internal/errors"
	"github.com/scholara/portal/session"
)

// State of the authentication flow.
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
	StateFailed         State = "authentication_failed"
)

// API is the slice of the gateway client the flow depends on.
type API interface {
	Login(ctx context.Context, email, password string) (session.Payload, error)
	LoginWithGoogle(ctx context.Context, credential string) (session.Payload, error)
	Register(ctx context.Context, req gateway.RegisterRequest) (session.Payload, error)
	Me(ctx context.Context) (*gateway.Profile, error)
}

// Flow performs credential and federated logins, writes the session
// payload into the store on success and retains the failure reason for
// display on rejection. It does not coordinate concurrent attempts:
// only one credential submission is expected at a time from a single
// tab.
type Flow struct {
	api   API
	store *session.Store

	state   State
	failure string
}

func NewFlow(api API, store *session.Store) *Flow {
	return &Flow{api: api, store: store, state: StateAnonymous}
}

// State returns the flow's current state.
func (f *Flow) State() State {
	return f.state
}

// FailureReason returns the human-readable reason for the last failed
// attempt, or "" when the last attempt succeeded.
func (f *Flow) FailureReason() string {
	return f.failure
}

// Login performs a credential login and returns the resulting role.
func (f *Flow) Login(ctx context.Context, email, password string) (session.Role, error) {
	return f.authenticate(func() (session.Payload, error) {
		return f.api.Login(ctx, email, password)
	})
}

// LoginWithGoogle performs the federated transition with an identity
// credential obtained from the external identity provider.
func (f *Flow) LoginWithGoogle(ctx context.Context, credential string) (session.Role, error) {
	return f.authenticate(func() (session.Payload, error) {
		return f.api.LoginWithGoogle(ctx, credential)
	})
}

// Register creates an account and signs it in, like the credential
// path.
func (f *Flow) Register(ctx context.Context, req gateway.RegisterRequest) (session.Role, error) {
	return f.authenticate(func() (session.Payload, error) {
		return f.api.Register(ctx, req)
	})
}

// Profile fetches the authenticated user's profile from the gateway.
func (f *Flow) Profile(ctx context.Context) (*gateway.Profile, error) {
	return f.api.Me(ctx)
}

// Logout clears the session, including the AI-call counter, and
// returns the flow to anonymous.
func (f *Flow) Logout() error {
	f.state = StateAnonymous
	f.failure = ""
	if err := f.store.Clear(); err != nil {
		return errors.Wrapf(err, "[Flow.Logout] clear session")
	}
	return nil
}

// CurrentUser exposes the stored user record, nil when anonymous.
func (f *Flow) CurrentUser() *session.User {
	return f.store.StoredUser()
}

func (f *Flow) authenticate(call func() (session.Payload, error)) (session.Role, error) {
	f.state = StateAuthenticating
	f.failure = ""

	payload, err := call()
	if err != nil {
		f.fail(err)
		return "", err
	}
	if err := f.store.SetSession(payload); err != nil {
		f.fail(err)
		return "", err
	}

	f.state = StateAuthenticated
	return payload.Role, nil
}

func (f *Flow) fail(err error) {
	f.state = StateFailed
	f.failure = FailureMessage(err)
}

// FailureMessage maps an authentication error to the text shown to the
// user: the server-supplied message for a structured rejection, a
// generic retry suggestion when the gateway never answered.
func FailureMessage(err error) string {
	var statusErr *gateway.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return "Authentication service unreachable, please try again"
}
