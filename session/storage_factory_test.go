package session_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pipelineai/auth-gateway/internal/config"
	"github.com/pipelineai/auth-gateway/session"
)

func TestNewStorageFromConfig(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		t.Setenv("SESSION_BACKEND", "memory")
		storage := session.NewStorageFromConfig(config.New())
		require.IsType(t, &session.InMemoryStorage{}, storage)
	})

	t.Run("redis backend", func(t *testing.T) {
		t.Setenv("SESSION_BACKEND", "redis")
		storage := session.NewStorageFromConfig(config.New())
		require.IsType(t, &session.RedisStorage{}, storage)
	})

	t.Run("defaults to the file backend", func(t *testing.T) {
		t.Setenv("SESSION_BACKEND", "")
		t.Setenv("FOLDER", t.TempDir())
		storage := session.NewStorageFromConfig(config.New())
		require.IsType(t, &session.FileStorage{}, storage)
	})
}
