package domain

// SessionState is the lifecycle state of a client session binding.
type SessionState string

const (
	// StateResolving is the initial state, before the stored session has
	// been looked up. It occurs exactly once per session handle.
	StateResolving SessionState = "resolving"
	StateAnonymous SessionState = "anonymous"
	StateUser      SessionState = "authenticated_user"
	StateAdmin     SessionState = "authenticated_admin"
)

// Session is the binding of zero or one Identity to a running client.
// Admin is true iff Authenticated is true and the bound identity is an
// administrator. Loading is true only while State is StateResolving.
type Session struct {
	State         SessionState `json:"state"`
	Identity      *Identity    `json:"identity,omitempty"`
	Authenticated bool         `json:"authenticated"`
	Admin         bool         `json:"admin"`
	Loading       bool         `json:"loading"`
}

// AnonymousSession returns the resolved, unauthenticated session value.
func AnonymousSession() Session {
	return Session{State: StateAnonymous}
}

// ResolvingSession returns the initial, unresolved session value.
func ResolvingSession() Session {
	return Session{State: StateResolving, Loading: true}
}

// BoundSession returns the session value for an authenticated identity.
// The state is derived from the identity's role.
func BoundSession(identity *Identity) Session {
	s := Session{
		State:         StateUser,
		Identity:      identity,
		Authenticated: true,
	}
	if identity.IsAdmin() {
		s.State = StateAdmin
		s.Admin = true
	}
	return s
}

// StateForRole maps a role to the authenticated session state it produces.
func StateForRole(role string) SessionState {
	if role == RoleAdmin {
		return StateAdmin
	}
	return StateUser
}
