package session

import "github.com/voyago/traveldesk/pkg/jwtx"

// State is the session lifecycle state.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
	StateRefreshing
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateRefreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// Identity is the read-only view of the authenticated user handed to the UI
// layer and the authorization gate. It is always derived from the current
// access token, never cached across sessions.
type Identity struct {
	// User holds the decoded claims of the current access token, nil when
	// anonymous.
	User *jwtx.Claims

	// IsAuthenticated is true only while a token pair is held.
	IsAuthenticated bool

	// IsLoading is true while a login or an eager startup refresh is in
	// flight.
	IsLoading bool
}

// Roles returns the identity's role set, empty when anonymous.
func (id Identity) Roles() []string {
	if id.User == nil {
		return nil
	}
	return id.User.Roles()
}

// HasRole reports whether the identity carries the given role.
func (id Identity) HasRole(role string) bool {
	return id.User != nil && id.User.HasRole(role)
}
