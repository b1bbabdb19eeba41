package config

import (
	"time"
)

// OAuthConfig describes the single GitHub OAuth application the relay
// exchanges authorization codes for. The client secret never leaves the
// server side.
type OAuthConfig interface {
	GetGithubClientID() string
	GetGithubClientSecret() string
	GetGithubTokenURL() string
	GetGithubUserURL() string
	GetGithubAPIURL() string
	GetProviderTimeout() time.Duration
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetGithubClientID() string {
	return GetEnv("GITHUB_CLIENT_ID", "")
}

func (OAuth) GetGithubClientSecret() string {
	return GetEnv("GITHUB_CLIENT_SECRET", "")
}

func (OAuth) GetGithubTokenURL() string {
	return GetEnv("GITHUB_TOKEN_URL", "https://github.com/login/oauth/access_token")
}

func (OAuth) GetGithubUserURL() string {
	return GetEnv("GITHUB_USER_URL", "https://api.github.com/user")
}

func (OAuth) GetGithubAPIURL() string {
	return GetEnv("GITHUB_API_URL", "https://api.github.com")
}

// GetProviderTimeout bounds each outbound call to the identity provider.
// A hung provider surfaces as a generic exchange failure after this wait.
func (OAuth) GetProviderTimeout() time.Duration {
	d, err := time.ParseDuration(GetEnv("PROVIDER_TIMEOUT", "10s"))
	if err != nil {
		return 10 * time.Second
	}
	return d
}
