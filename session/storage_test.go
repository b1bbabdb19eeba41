package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pipelineai/auth-gateway/session"
	"github.com/pipelineai/auth-gateway/users"
)

func TestFileStorage(t *testing.T) {
	t.Run("missing record loads as absent", func(t *testing.T) {
		storage := session.NewFileStorage(t.TempDir())
		_, ok, err := storage.Load()
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("round trips the session record", func(t *testing.T) {
		storage := session.NewFileStorage(t.TempDir())
		saved := session.Session{
			User:            &session.Identity{ID: "42", Email: "octo@example.com", Name: "octo"},
			Token:           "tok1",
			IsAuthenticated: true,
		}
		require.NoError(t, storage.Save(saved))

		loaded, ok, err := storage.Load()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, saved, loaded)
	})

	t.Run("creates the data folder on first save", func(t *testing.T) {
		folder := filepath.Join(t.TempDir(), "nested", "data")
		storage := session.NewFileStorage(folder)
		require.NoError(t, storage.Save(session.Session{}))
	})

	t.Run("corrupt record errors on load", func(t *testing.T) {
		folder := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(folder, "auth-session.json"), []byte("{not json"), 0o600))

		storage := session.NewFileStorage(folder)
		_, _, err := storage.Load()
		require.Error(t, err)
	})

	t.Run("store rehydrates logged out from a corrupt file", func(t *testing.T) {
		folder := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(folder, "auth-session.json"), []byte("garbage"), 0o600))

		auth := session.NewLocalAuthenticator(users.NewInMemoryUserRepo())
		store, err := session.NewStore(session.NewFileStorage(folder), auth, "test-secret")
		require.NoError(t, err)
		require.False(t, store.Current().IsAuthenticated)
	})
}
