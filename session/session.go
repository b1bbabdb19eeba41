package session

// Identity describes who a session belongs to. It is immutable once
// established; re-authentication replaces it wholesale.
type Identity struct {
	ID      string         `json:"id"`                // Opaque identifier from the identity source
	Email   string         `json:"email,omitempty"`   // User's email address
	Name    string         `json:"name,omitempty"`    // Display name
	Profile map[string]any `json:"profile,omitempty"` // Provider payload, passed through unmodified
}

// Session is the triple consulted by every protected view.
// IsAuthenticated is true iff both the identity and the credential are
// present and non-empty; mutations always replace the whole triple.
type Session struct {
	User            *Identity `json:"user"`
	Token           string    `json:"token"`
	IsAuthenticated bool      `json:"isAuthenticated"`
}

func (s Session) hasIdentity() bool {
	return s.User != nil && s.User.ID != ""
}
