package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/pipelineai/auth-gateway/internal/config"
	"github.com/pipelineai/auth-gateway/internal/errors"
)

// Result carries the provider profile and access token handed back to the
// browser. The profile is a dynamic payload; nothing here assumes a schema
// beyond what the provider returns.
type Result struct {
	Profile map[string]any
	Token   string
}

// Exchanger trades a short-lived authorization code for a GitHub access
// token and the user profile it unlocks. It holds the client secret so the
// browser never sees it, and no session state of its own.
type Exchanger struct {
	conf    *oauth2.Config
	userURL string
	client  *http.Client
	timeout time.Duration
}

func New(cfg config.OAuthConfig) *Exchanger {
	return &Exchanger{
		conf: &oauth2.Config{
			ClientID:     cfg.GetGithubClientID(),
			ClientSecret: cfg.GetGithubClientSecret(),
			Endpoint: oauth2.Endpoint{
				TokenURL: cfg.GetGithubTokenURL(),
			},
		},
		userURL: cfg.GetGithubUserURL(),
		client:  &http.Client{Timeout: cfg.GetProviderTimeout()},
		timeout: cfg.GetProviderTimeout(),
	}
}

// Exchange performs the two provider calls: code for token, then token for
// profile. Codes are single-use by provider contract, so a reused code
// fails the first call and surfaces like any other exchange failure.
func (e *Exchanger) Exchange(ctx context.Context, code string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, e.client)

	token, err := e.conf.Exchange(ctx, code)
	if err != nil {
		return Result{}, errors.Wrapf(err, "[Exchange] code exchange")
	}

	profile, err := e.fetchProfile(ctx, token.AccessToken)
	if err != nil {
		return Result{}, errors.Wrapf(err, "[Exchange] profile fetch")
	}

	return Result{Profile: profile, Token: token.AccessToken}, nil
}

func (e *Exchanger) fetchProfile(ctx context.Context, accessToken string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.userURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var profile map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return profile, nil
}
