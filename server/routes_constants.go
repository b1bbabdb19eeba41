package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Credential exchange relay
	RouteAuthGithub = "/auth/github"

	// Repository analysis
	RouteAnalyze = "/analyze"

	// Operational
	RouteHealthz = "/healthz"
)
