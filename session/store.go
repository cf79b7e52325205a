package session

import (
	"encoding/json"
	"strconv"

	"github.com/scholara/portal/internal/errors"
)

// Storage keys. Each entry is independently readable and clearable.
const (
	KeyAccessToken  = "authToken"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "authUser"
	KeyAICalls      = "aiCallsCount"
)

// Store holds one client's session truth: access token, refresh
// token, normalized user record and the AI-call counter. It never
// inspects token contents.
type Store struct {
	storage Storage
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// SetSession persists the tokens and the normalized user record from a
// successful auth call.
func (s *Store) SetSession(payload Payload) error {
	if err := s.storage.Set(KeyAccessToken, payload.AccessToken); err != nil {
		return errors.Wrapf(err, "[Store.SetSession] access token")
	}
	if err := s.storage.Set(KeyRefreshToken, payload.RefreshToken); err != nil {
		return errors.Wrapf(err, "[Store.SetSession] refresh token")
	}
	raw, err := json.Marshal(payload.User())
	if err != nil {
		return errors.Wrapf(err, "[Store.SetSession] marshal user")
	}
	if err := s.storage.Set(KeyUser, string(raw)); err != nil {
		return errors.Wrapf(err, "[Store.SetSession] user")
	}
	return nil
}

// AccessToken returns the stored bearer token, or "" when absent.
func (s *Store) AccessToken() string {
	token, _ := s.storage.Get(KeyAccessToken)
	return token
}

// RefreshToken returns the stored refresh token, or "" when absent.
func (s *Store) RefreshToken() string {
	token, _ := s.storage.Get(KeyRefreshToken)
	return token
}

// StoredUser returns the persisted user record. A missing or
// unparsable record yields nil rather than an error.
func (s *Store) StoredUser() *User {
	raw, ok := s.storage.Get(KeyUser)
	if !ok || raw == "" {
		return nil
	}
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

// AuthHeaders returns the Authorization header map for outgoing
// gateway requests, empty when no token is stored.
func (s *Store) AuthHeaders() map[string]string {
	token := s.AccessToken()
	if token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// Clear removes the tokens, the user record and the AI-call counter.
// Clearing an empty store is a no-op.
func (s *Store) Clear() error {
	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUser, KeyAICalls} {
		if err := s.storage.Delete(key); err != nil {
			return errors.Wrapf(err, "[Store.Clear] delete %q", key)
		}
	}
	return nil
}

// AICalls returns the persisted AI-call counter. Corrupt values read
// as zero.
func (s *Store) AICalls() int {
	raw, ok := s.storage.Get(KeyAICalls)
	if !ok {
		return 0
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		return 0
	}
	return count
}

// IncrementAICalls bumps the counter after a successful translate or
// summarize call. Display-only, not authoritative telemetry.
func (s *Store) IncrementAICalls() error {
	next := s.AICalls() + 1
	if err := s.storage.Set(KeyAICalls, strconv.Itoa(next)); err != nil {
		return errors.Wrapf(err, "[Store.IncrementAICalls] set")
	}
	return nil
}
