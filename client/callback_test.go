package client_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pipelineai/auth-gateway/client"
	"github.com/pipelineai/auth-gateway/session"
)

func newRelayStub(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/github", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func successRelay(t *testing.T) *httptest.Server {
	return newRelayStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"user":{"id":"42","login":"octo","email":"octo@example.com"},"token":"tok1"}`)
	})
}

func failingRelay(t *testing.T) *httptest.Server {
	return newRelayStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"Authentication failed"}`)
	})
}

func TestCallback_HandleLanding(t *testing.T) {
	ctx := context.Background()

	t.Run("landing without a code is untouched", func(t *testing.T) {
		store := newSessionStore(t)
		cb := client.NewCallback(client.NewRelay(successRelay(t).URL), store)

		landing := cb.HandleLanding(ctx, "http://localhost:3000/login?foo=bar")
		require.Equal(t, "http://localhost:3000/login?foo=bar", landing.URL)
		require.Empty(t, landing.Route)
		require.False(t, store.Current().IsAuthenticated)
	})

	t.Run("successful exchange authenticates and navigates to chat", func(t *testing.T) {
		store := newSessionStore(t)
		cb := client.NewCallback(client.NewRelay(successRelay(t).URL), store)

		landing := cb.HandleLanding(ctx, "http://localhost:3000/?code=abc123")
		require.Equal(t, client.RouteChat, landing.Route)

		sanitized, err := url.Parse(landing.URL)
		require.NoError(t, err)
		require.Empty(t, sanitized.Query().Get("code"), "code parameter is stripped from the visible URL")

		sess := store.Current()
		require.True(t, sess.IsAuthenticated)
		require.Equal(t, "42", sess.User.ID)
		require.Equal(t, "octo", sess.User.Name)
		require.Equal(t, "tok1", sess.Token)
	})

	t.Run("numeric profile id is carried as its string form", func(t *testing.T) {
		relay := newRelayStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"user":{"id":583231,"login":"octocat"},"token":"tok1"}`)
		})
		store := newSessionStore(t)
		cb := client.NewCallback(client.NewRelay(relay.URL), store)

		cb.HandleLanding(ctx, "http://localhost:3000/?code=abc123")
		require.Equal(t, "583231", store.Current().User.ID)
		require.Equal(t, "octocat", store.Current().User.Name)
	})

	t.Run("failed exchange redirects to login with the error flag", func(t *testing.T) {
		store := newSessionStore(t)
		cb := client.NewCallback(client.NewRelay(failingRelay(t).URL), store)

		landing := cb.HandleLanding(ctx, "http://localhost:3000/?code=expired")
		require.Equal(t, client.RouteLoginFailed, landing.Route)
		require.False(t, store.Current().IsAuthenticated)

		sanitized, err := url.Parse(landing.URL)
		require.NoError(t, err)
		require.Empty(t, sanitized.Query().Get("code"), "code is stripped even when the exchange fails")
	})

	t.Run("state parameter is stripped alongside the code", func(t *testing.T) {
		store := newSessionStore(t)
		cb := client.NewCallback(client.NewRelay(successRelay(t).URL), store)

		landing := cb.HandleLanding(ctx, "http://localhost:3000/?code=abc123&state=xyz&keep=1")
		sanitized, err := url.Parse(landing.URL)
		require.NoError(t, err)
		require.Empty(t, sanitized.Query().Get("code"))
		require.Empty(t, sanitized.Query().Get("state"))
		require.Equal(t, "1", sanitized.Query().Get("keep"))
	})

	t.Run("unrelated parameters keep their order and encoding", func(t *testing.T) {
		store := newSessionStore(t)
		cb := client.NewCallback(client.NewRelay(successRelay(t).URL), store)

		landing := cb.HandleLanding(ctx, "http://localhost:3000/?z=9&code=abc123&a=1&state=xyz&q=one%20two")
		require.Equal(t, "http://localhost:3000/?z=9&a=1&q=one%20two", landing.URL,
			"only code and state are removed; the rest of the query is untouched")
	})

	t.Run("late exchange loses to a newer session", func(t *testing.T) {
		store := newSessionStore(t)
		// The relay resolves only after a fresh login has superseded the
		// pending exchange.
		relay := newRelayStub(t, func(w http.ResponseWriter, r *http.Request) {
			store.SetExternalAuth(session.Identity{ID: "7", Name: "newer"}, "tok2")
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"user":{"id":"42"},"token":"tok1"}`)
		})
		cb := client.NewCallback(client.NewRelay(relay.URL), store)

		landing := cb.HandleLanding(ctx, "http://localhost:3000/?code=stale")
		require.Empty(t, landing.Route, "a discarded result does not force navigation")
		require.Equal(t, "7", store.Current().User.ID, "the newer session survives")
		require.Equal(t, "tok2", store.Current().Token)
	})
}
