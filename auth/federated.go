package auth

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/scholara/portal/internal/config"
	"github.com/scholara/portal/internal/errors"
	"golang.org/x/oauth2"
)

// Google runs the server-side half of Google sign-in: it builds the
// consent URL and, on callback, exchanges the authorization code and
// verifies the ID token. The verified raw ID token is the credential
// the gateway's federated-login endpoint expects.
type Google struct {
	oauth    *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// NewGoogle discovers the identity provider and prepares the sign-in
// configuration. redirectURL is the portal's own callback route.
func NewGoogle(ctx context.Context, cfg config.GoogleConfig, redirectURL string) (*Google, error) {
	provider, err := oidc.NewProvider(ctx, cfg.GetGoogleIssuer())
	if err != nil {
		return nil, errors.Wrapf(err, "[NewGoogle] provider discovery")
	}

	return &Google{
		oauth: &oauth2.Config{
			ClientID:     cfg.GetGoogleClientID(),
			ClientSecret: cfg.GetGoogleClientSecret(),
			Endpoint:     provider.Endpoint(),
			RedirectURL:  redirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.GetGoogleClientID()}),
	}, nil
}

// AuthCodeURL returns the consent page URL carrying state and nonce.
func (g *Google) AuthCodeURL(state, nonce string) string {
	return g.oauth.AuthCodeURL(state, oidc.Nonce(nonce))
}

// Credential exchanges the callback's authorization code and returns
// the verified raw ID token.
func (g *Google) Credential(ctx context.Context, code, nonce string) (string, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return "", errors.Wrapf(err, "[Google.Credential] code exchange")
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return "", errors.Wrapf(errors.ErrInvalidCredentials, "[Google.Credential] no ID token in response")
	}

	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return "", errors.Wrapf(err, "[Google.Credential] ID token verification")
	}

	var claims struct {
		Nonce string `json:"nonce"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return "", errors.Wrapf(err, "[Google.Credential] extract claims")
	}
	if claims.Nonce != nonce {
		return "", errors.Wrapf(errors.ErrInvalidCredentials, "[Google.Credential] nonce mismatch")
	}

	return rawIDToken, nil
}
