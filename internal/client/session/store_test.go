package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/go-storefront/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "state", "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestStoreSetGet(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Get(KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(KeyToken, "token-1"))
	require.NoError(t, store.Set(KeyToken, "token-2"))

	value, ok, err := store.Get(KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "token-2", value, "повторный Set затирает значение")
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set(KeyToken, "token-1"))
	require.NoError(t, store.Set(KeyUsername, "shopper1"))
	require.NoError(t, store.Clear())

	_, ok, err := store.Get(KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionRoundtrip(t *testing.T) {
	store := openTestStore(t)

	saved := domain.Session{
		Authenticated: true,
		Username:      "shopper1",
		Token:         "token-1",
		Balance:       500_000,
	}
	require.NoError(t, store.SaveSession(saved))

	restored, err := store.Session()
	require.NoError(t, err)
	assert.Equal(t, saved, restored)
}

func TestSessionMissingTokenIsAnonymous(t *testing.T) {
	store := openTestStore(t)

	session, err := store.Session()

	require.NoError(t, err, "отсутствие токена — анонимная сессия, а не ошибка")
	assert.False(t, session.Authenticated)
	assert.Empty(t, session.Token)
}

func TestSessionSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveSession(domain.Session{
		Authenticated: true,
		Username:      "shopper1",
		Token:         "token-1",
		Balance:       42,
	}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	session, err := reopened.Session()
	require.NoError(t, err)
	assert.True(t, session.Authenticated)
	assert.Equal(t, "token-1", session.Token)
	assert.Equal(t, int64(42), session.Balance)
}
