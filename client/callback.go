package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pipelineai/auth-gateway/session"
)

// Callback inspects a landing URL for an inbound authorization code and,
// when one is present, drives the credential exchange and reconciles the
// result into the session store.
type Callback struct {
	relay    *Relay
	sessions *session.Store
}

func NewCallback(relay *Relay, sessions *session.Store) *Callback {
	return &Callback{relay: relay, sessions: sessions}
}

// Landing is the navigation outcome of processing a landing URL.
type Landing struct {
	// URL is the sanitized address to show, with the code parameter
	// stripped so a re-render cannot trigger a second exchange.
	URL string

	// Route is the view to navigate to, or empty when the landing URL
	// carried no code and navigation proceeds as requested.
	Route string
}

// HandleLanding processes the landing URL once. The code is consumed with
// a single exchange attempt: it is single-use by provider contract, so a
// failed exchange redirects to the login view instead of retrying.
func (c *Callback) HandleLanding(ctx context.Context, rawURL string) Landing {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Landing{URL: rawURL}
	}

	code := u.Query().Get("code")
	if code == "" {
		return Landing{URL: rawURL}
	}

	// Sanitize before the exchange resolves so the code never re-triggers
	sanitized := stripAuthParams(u)
	c.sessions.BeginExchange(code)

	result, err := c.relay.ExchangeCode(ctx, code)
	if err != nil {
		log.Warn().Err(err).Msg("credential exchange failed")
		return Landing{URL: sanitized, Route: RouteLoginFailed}
	}

	if _, err := c.sessions.CompleteExchange(code, identityFromProfile(result.User), result.Token); err != nil {
		// A newer login finished while this exchange was in flight; its
		// session wins and this result is dropped.
		log.Warn().Err(err).Msg("discarding late exchange result")
		return Landing{URL: sanitized}
	}

	return Landing{URL: sanitized, Route: RouteChat}
}

// stripAuthParams removes the code and state parameters while leaving the
// rest of the query byte-for-byte as it arrived, so the sanitized URL only
// differs from the visible one by the dropped parameters.
func stripAuthParams(u *url.URL) string {
	if u.RawQuery == "" {
		return u.String()
	}

	var kept []string
	for _, pair := range strings.Split(u.RawQuery, "&") {
		key := pair
		if i := strings.Index(pair, "="); i >= 0 {
			key = pair[:i]
		}
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		if key == "code" || key == "state" {
			continue
		}
		kept = append(kept, pair)
	}
	u.RawQuery = strings.Join(kept, "&")
	return u.String()
}

// identityFromProfile lifts the display fields out of the provider payload
// and keeps the rest attached untouched.
func identityFromProfile(profile map[string]any) session.Identity {
	name := stringField(profile, "name")
	if name == "" {
		name = stringField(profile, "login")
	}
	return session.Identity{
		ID:      stringField(profile, "id"),
		Email:   stringField(profile, "email"),
		Name:    name,
		Profile: profile,
	}
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
