package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pipelineai/auth-gateway/internal/config"
)

func TestEnvVars(t *testing.T) {
	c := config.New()

	t.Run("port defaults and gains a colon prefix", func(t *testing.T) {
		t.Setenv("PORT", "")
		require.Equal(t, ":8080", c.GetPort())

		t.Setenv("PORT", "9000")
		require.Equal(t, ":9000", c.GetPort())
	})

	t.Run("env defaults to DEV", func(t *testing.T) {
		t.Setenv("ENV", "")
		require.Equal(t, "DEV", c.GetEnv())
	})
}

func TestSecurityConfig(t *testing.T) {
	c := config.New()

	t.Run("min password length defaults to 6", func(t *testing.T) {
		t.Setenv("PASSWORD_MIN_LENGTH", "")
		require.Equal(t, 6, c.GetMinPasswordLength())
	})

	t.Run("min password length is configurable", func(t *testing.T) {
		t.Setenv("PASSWORD_MIN_LENGTH", "12")
		require.Equal(t, 12, c.GetMinPasswordLength())
	})

	t.Run("nonsense values fall back to the default", func(t *testing.T) {
		t.Setenv("PASSWORD_MIN_LENGTH", "not-a-number")
		require.Equal(t, 6, c.GetMinPasswordLength())
	})
}

func TestOAuthConfig(t *testing.T) {
	c := config.New()

	t.Run("provider timeout defaults to ten seconds", func(t *testing.T) {
		t.Setenv("PROVIDER_TIMEOUT", "")
		require.Equal(t, 10*time.Second, c.GetProviderTimeout())
	})

	t.Run("provider timeout parses durations", func(t *testing.T) {
		t.Setenv("PROVIDER_TIMEOUT", "250ms")
		require.Equal(t, 250*time.Millisecond, c.GetProviderTimeout())
	})

	t.Run("api url defaults to github and is overridable", func(t *testing.T) {
		t.Setenv("GITHUB_API_URL", "")
		require.Equal(t, "https://api.github.com", c.GetGithubAPIURL())

		t.Setenv("GITHUB_API_URL", "http://localhost:9999")
		require.Equal(t, "http://localhost:9999", c.GetGithubAPIURL())
	})
}

func TestCorsConfig(t *testing.T) {
	c := config.New()

	t.Run("parses the comma separated origin list", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example.com, http://b.example.com")
		origins := c.GetAllowedOrigins()
		require.True(t, origins.IsAllowedOrigin("http://a.example.com"))
		require.True(t, origins.IsAllowedOrigin("http://b.example.com"))
		require.False(t, origins.IsAllowedOrigin("http://c.example.com"))
	})

	t.Run("defaults to the local dev server", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("http://localhost:3000"))
	})
}
