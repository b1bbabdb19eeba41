package errors

import (
	"errors"
	"fmt"
)

// Common error types for the auth gateway
var (
	// Local authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password does not meet the minimum strength policy")
	ErrPasswordMismatch   = errors.New("passwords do not match")

	// Provider exchange errors
	ErrExchangeFailed = errors.New("authentication failed")
	ErrStaleExchange  = errors.New("authorization code is no longer current")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Repository analysis errors
	ErrInvalidAnalysisRequest = errors.New("invalid analysis request")
	ErrBadProviderToken       = errors.New("invalid or insufficient GitHub token")
	ErrRepoNotFound           = errors.New("repository or branch not found")
	ErrProviderUnavailable    = errors.New("GitHub API returned an error")

	// General errors
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
