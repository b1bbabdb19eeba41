package config

import "strconv"

type SecurityConfig interface {
	GetMinPasswordLength() int
	GetSigningSecret() string
	GetSessionBackend() string
	GetRedisAddr() string
	GetRedisPassword() string
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetMinPasswordLength is the local credential acceptance policy. It is
// configurable rather than hardcoded so deployments that keep the local
// login path can tighten it.
func (Security) GetMinPasswordLength() int {
	n, err := strconv.Atoi(GetEnv("PASSWORD_MIN_LENGTH", "6"))
	if err != nil || n < 1 {
		return 6
	}
	return n
}

// GetSigningSecret signs credentials minted for local logins.
func (Security) GetSigningSecret() string {
	return GetEnv("SIGNING_SECRET", "dev-only-signing-secret")
}

// GetSessionBackend selects the durable session record store: "file",
// "redis", or "memory".
func (Security) GetSessionBackend() string {
	return GetEnv("SESSION_BACKEND", "file")
}

func (Security) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func (Security) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}
