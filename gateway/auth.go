package gateway

import (
	"context"
	"net/http"

	"github.com/scholara/portal/session"
)

const (
	loginPath    = "/api/auth/login"
	googlePath   = "/api/auth/google"
	registerPath = "/api/auth/register"
	profilePath  = "/api/auth/me"
)

// Login exchanges credentials for a session payload.
func (c *Client) Login(ctx context.Context, email, password string) (session.Payload, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authCall(ctx, loginPath, body)
}

// LoginWithGoogle exchanges a federated identity credential (a Google
// ID token) for a session payload.
func (c *Client) LoginWithGoogle(ctx context.Context, credential string) (session.Payload, error) {
	body := map[string]string{"credential": credential}
	return c.authCall(ctx, googlePath, body)
}

// Register creates an account and returns its session payload.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (session.Payload, error) {
	return c.authCall(ctx, registerPath, req)
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.getJSON(ctx, profilePath, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) authCall(ctx context.Context, path string, body any) (session.Payload, error) {
	raw, status, err := c.request(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return session.Payload{}, err
	}
	if !success(status) {
		return session.Payload{}, newStatusError(status, raw)
	}
	var payload session.Payload
	if err := decodeInto(status, raw, &payload); err != nil {
		return session.Payload{}, err
	}
	return payload, nil
}
