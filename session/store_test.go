package session_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/scholara/portal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayload() session.Payload {
	return session.Payload{
		AccessToken:  "t1",
		RefreshToken: "r1",
		UserID:       1,
		FullName:     "Admin",
		Email:        "admin@scholara.com",
		Role:         session.RoleAdmin,
	}
}

func TestStoreSessionRoundTrip(t *testing.T) {
	store := session.NewStore(session.NewInMemoryStorage())

	require.NoError(t, store.SetSession(testPayload()))

	user := store.StoredUser()
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "Admin", user.FullName)
	assert.Equal(t, "admin@scholara.com", user.Email)
	assert.Equal(t, session.RoleAdmin, user.Role)

	assert.Equal(t, "t1", store.AccessToken())
	assert.Equal(t, "r1", store.RefreshToken())
}

func TestStoredUserCorruptRecord(t *testing.T) {
	storage := session.NewInMemoryStorage()
	require.NoError(t, storage.Set(session.KeyUser, "{not json"))
	require.NoError(t, storage.Set(session.KeyAccessToken, "t1"))

	store := session.NewStore(storage)

	assert.NotPanics(t, func() {
		assert.Nil(t, store.StoredUser())
	})
}

func TestStoredUserAbsent(t *testing.T) {
	store := session.NewStore(session.NewInMemoryStorage())
	assert.Nil(t, store.StoredUser())
}

func TestAuthHeaders(t *testing.T) {
	store := session.NewStore(session.NewInMemoryStorage())
	assert.Empty(t, store.AuthHeaders())

	require.NoError(t, store.SetSession(testPayload()))
	assert.Equal(t, map[string]string{"Authorization": "Bearer t1"}, store.AuthHeaders())
}

func TestClearRemovesEverything(t *testing.T) {
	store := session.NewStore(session.NewInMemoryStorage())
	require.NoError(t, store.SetSession(testPayload()))
	require.NoError(t, store.IncrementAICalls())

	require.NoError(t, store.Clear())

	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
	assert.Nil(t, store.StoredUser())
	assert.Zero(t, store.AICalls())
	assert.Empty(t, store.AuthHeaders())

	// Clearing again is a no-op
	require.NoError(t, store.Clear())
}

func TestAICallsCounter(t *testing.T) {
	storage := session.NewInMemoryStorage()
	store := session.NewStore(storage)

	assert.Equal(t, 0, store.AICalls())

	require.NoError(t, store.IncrementAICalls())
	require.NoError(t, store.IncrementAICalls())
	assert.Equal(t, 2, store.AICalls())

	// Corrupt counter reads as zero
	require.NoError(t, storage.Set(session.KeyAICalls, "many"))
	assert.Equal(t, 0, store.AICalls())
}

func TestFileStoragePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := session.NewStore(session.NewFileStorage(path))
	require.NoError(t, store.SetSession(testPayload()))

	reopened := session.NewStore(session.NewFileStorage(path))
	user := reopened.StoredUser()
	require.NotNil(t, user)
	assert.Equal(t, session.RoleAdmin, user.Role)
	assert.Equal(t, "t1", reopened.AccessToken())
}

func TestFileStorageUnparsableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	// A corrupt file on disk reads as empty storage.
	store := session.NewStore(session.NewFileStorage(path))
	assert.Nil(t, store.StoredUser())
	assert.Empty(t, store.AccessToken())
}

func TestManagerLifecycle(t *testing.T) {
	manager := session.NewManager(func() session.Storage { return session.NewInMemoryStorage() }, 0)

	sid, store := manager.New()
	require.NotEmpty(t, sid)
	require.NotNil(t, store)

	got, ok := manager.Get(sid)
	require.True(t, ok)
	assert.Same(t, store, got)

	_, ok = manager.Get("unknown")
	assert.False(t, ok)

	manager.Delete(sid)
	_, ok = manager.Get(sid)
	assert.False(t, ok)
}

func TestManagerExpiry(t *testing.T) {
	now := time.Now()
	manager := session.NewManager(
		func() session.Storage { return session.NewInMemoryStorage() },
		time.Hour,
		session.WithNowTime(func() time.Time { return now }),
	)

	sid, _ := manager.New()

	now = now.Add(2 * time.Hour)
	_, ok := manager.Get(sid)
	assert.False(t, ok)
}
