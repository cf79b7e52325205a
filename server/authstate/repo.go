// Package authstate holds the short-lived state of an in-flight
// federated sign-in, keyed by the OAuth2 state parameter.
package authstate

import "time"

type AuthState struct {
	Nonce     string
	CreatedAt time.Time
}

type Repo interface {
	Upsert(state string, authState *AuthState) error
	Get(state string) (*AuthState, error)
	Delete(state string) error
}
