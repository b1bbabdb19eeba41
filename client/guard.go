package client

import (
	"github.com/pipelineai/auth-gateway/session"
)

// Guard decides, per navigation, whether a requested view is reachable
// given the current session state. Decisions are pure reads of the
// session; the guard never mutates it.
type Guard struct {
	sessions  *session.Store
	protected map[string]bool
	anonOnly  map[string]bool
}

// NewGuard creates a guard with the application's default view table.
func NewGuard(sessions *session.Store) *Guard {
	g := &Guard{
		sessions:  sessions,
		protected: make(map[string]bool),
		anonOnly:  make(map[string]bool),
	}
	g.Protect(RouteChat)
	g.PublicOnly(RouteLogin)
	g.PublicOnly(RouteSignup)
	return g
}

// Protect marks a view as requiring an authenticated session.
func (g *Guard) Protect(path string) {
	g.protected[path] = true
}

// PublicOnly marks a view as requiring anonymity.
func (g *Guard) PublicOnly(path string) {
	g.anonOnly[path] = true
}

// Resolve returns the view to render for a requested path: protected
// views bounce anonymous sessions to the public entry view, public-only
// views bounce authenticated sessions to the protected view, and
// unrecognized paths land on the public entry view.
func (g *Guard) Resolve(path string) string {
	authenticated := g.sessions.Current().IsAuthenticated

	switch {
	case g.protected[path]:
		if !authenticated {
			return RouteLogin
		}
		return path
	case g.anonOnly[path]:
		if authenticated {
			return RouteChat
		}
		return path
	default:
		return g.Resolve(RouteLogin)
	}
}
