package client

// View path constants for the single-page application.
const (
	// RouteChat is the protected view.
	RouteChat = "/chat"

	// RouteLogin is the public entry view.
	RouteLogin  = "/login"
	RouteSignup = "/signup"

	// RouteLoginFailed is the login view carrying the authentication
	// failure flag.
	RouteLoginFailed = RouteLogin + "?error=auth_failed"
)
