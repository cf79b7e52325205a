package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/scholara/portal/auth"
	"github.com/scholara/portal/gateway"
	"github.com/scholara/portal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ auth.API = (*fakeAuthAPI)(nil)

// fakeAuthAPI stands in for the gateway's auth surface.
type fakeAuthAPI struct {
	payload session.Payload
	err     error

	lastEmail      string
	lastCredential string
	lastRegister   gateway.RegisterRequest
}

func (f *fakeAuthAPI) Login(_ context.Context, email, _ string) (session.Payload, error) {
	f.lastEmail = email
	return f.payload, f.err
}

func (f *fakeAuthAPI) LoginWithGoogle(_ context.Context, credential string) (session.Payload, error) {
	f.lastCredential = credential
	return f.payload, f.err
}

func (f *fakeAuthAPI) Register(_ context.Context, req gateway.RegisterRequest) (session.Payload, error) {
	f.lastRegister = req
	return f.payload, f.err
}

func (f *fakeAuthAPI) Me(_ context.Context) (*gateway.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &gateway.Profile{
		UserID:   f.payload.UserID,
		FullName: f.payload.FullName,
		Email:    f.payload.Email,
		Role:     string(f.payload.Role),
	}, nil
}

func adminPayload() session.Payload {
	return session.Payload{
		AccessToken:  "t1",
		RefreshToken: "r1",
		UserID:       1,
		FullName:     "Admin",
		Email:        "admin@scholara.com",
		Role:         session.RoleAdmin,
	}
}

func TestLoginSuccess(t *testing.T) {
	api := &fakeAuthAPI{payload: adminPayload()}
	store := session.NewStore(session.NewInMemoryStorage())
	flow := auth.NewFlow(api, store)

	require.Equal(t, auth.StateAnonymous, flow.State())

	role, err := flow.Login(context.Background(), "admin@scholara.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, session.RoleAdmin, role)
	assert.Equal(t, auth.StateAuthenticated, flow.State())
	assert.Empty(t, flow.FailureReason())

	user := store.StoredUser()
	require.NotNil(t, user)
	assert.Equal(t, "admin@scholara.com", user.Email)
	assert.Equal(t, "t1", store.AccessToken())
	assert.Equal(t, "r1", store.RefreshToken())
}

func TestLoginStructuredRejection(t *testing.T) {
	api := &fakeAuthAPI{err: &gateway.StatusError{Status: 401, Message: "Invalid email or password"}}
	store := session.NewStore(session.NewInMemoryStorage())
	flow := auth.NewFlow(api, store)

	_, err := flow.Login(context.Background(), "admin@scholara.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, auth.StateFailed, flow.State())
	assert.Equal(t, "Invalid email or password", flow.FailureReason())
	assert.Nil(t, store.StoredUser())
}

func TestLoginTransportFailure(t *testing.T) {
	api := &fakeAuthAPI{err: errors.New("dial tcp: connection refused")}
	flow := auth.NewFlow(api, session.NewStore(session.NewInMemoryStorage()))

	_, err := flow.Login(context.Background(), "admin@scholara.com", "secret")
	require.Error(t, err)
	assert.Equal(t, auth.StateFailed, flow.State())
	assert.Equal(t, "Authentication service unreachable, please try again", flow.FailureReason())
}

func TestFailedFlowRecoversOnNextAttempt(t *testing.T) {
	api := &fakeAuthAPI{err: &gateway.StatusError{Status: 401, Message: "Invalid email or password"}}
	store := session.NewStore(session.NewInMemoryStorage())
	flow := auth.NewFlow(api, store)

	_, err := flow.Login(context.Background(), "admin@scholara.com", "wrong")
	require.Error(t, err)

	api.err = nil
	api.payload = adminPayload()

	role, err := flow.Login(context.Background(), "admin@scholara.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, session.RoleAdmin, role)
	assert.Equal(t, auth.StateAuthenticated, flow.State())
	assert.Empty(t, flow.FailureReason())
}

func TestLoginWithGoogle(t *testing.T) {
	payload := adminPayload()
	payload.Role = session.RoleStudent
	api := &fakeAuthAPI{payload: payload}
	store := session.NewStore(session.NewInMemoryStorage())
	flow := auth.NewFlow(api, store)

	role, err := flow.LoginWithGoogle(context.Background(), "google-id-token")
	require.NoError(t, err)
	assert.Equal(t, session.RoleStudent, role)
	assert.Equal(t, "google-id-token", api.lastCredential)
	require.NotNil(t, store.StoredUser())
}

func TestRegister(t *testing.T) {
	payload := adminPayload()
	payload.Role = session.RoleStudent
	api := &fakeAuthAPI{payload: payload}
	flow := auth.NewFlow(api, session.NewStore(session.NewInMemoryStorage()))

	role, err := flow.Register(context.Background(), gateway.RegisterRequest{
		FullName: "New Student",
		Email:    "new@scholara.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, session.RoleStudent, role)
	assert.Equal(t, "new@scholara.com", api.lastRegister.Email)
}

func TestLogoutClearsSessionAndCounter(t *testing.T) {
	api := &fakeAuthAPI{payload: adminPayload()}
	store := session.NewStore(session.NewInMemoryStorage())
	flow := auth.NewFlow(api, store)

	_, err := flow.Login(context.Background(), "admin@scholara.com", "secret")
	require.NoError(t, err)
	require.NoError(t, store.IncrementAICalls())

	require.NoError(t, flow.Logout())

	assert.Equal(t, auth.StateAnonymous, flow.State())
	assert.Empty(t, store.AccessToken())
	assert.Nil(t, store.StoredUser())
	assert.Zero(t, store.AICalls())
	assert.Nil(t, flow.CurrentUser())
}
