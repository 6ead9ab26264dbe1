package service

import (
	"context"
	"errors"
	"sync"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
	"github.com/pmbajaj/Lib-Management-System/internal/core/ports"
)

// SessionManager is the single authority for "who is logged in" on one
// client session. It owns the session value exclusively: every transition
// goes through it, and mutating operations are serialized behind one mutex
// so concurrent submissions cannot produce lost updates.
//
// Lifecycle: a handle starts in StateResolving. Resolve looks up the stored
// session exactly once; after it returns the state is Anonymous or one of
// the authenticated states and Loading is permanently false for the life of
// the handle.
type SessionManager struct {
	mu    sync.Mutex
	auth  ports.AuthService
	store ports.SessionStore

	token    string
	state    domain.SessionState
	identity *domain.Identity
	resolved bool
}

// NewSessionManager creates an unresolved session handle for token. An empty
// token resolves straight to Anonymous.
func NewSessionManager(auth ports.AuthService, store ports.SessionStore, token string) *SessionManager {
	return &SessionManager{
		auth:  auth,
		store: store,
		token: token,
		state: domain.StateResolving,
	}
}

// Resolve performs the initial transition out of StateResolving. A stored
// identity moves the session to the authenticated state for its role; an
// absent or corrupt stored value moves it to Anonymous. Only a transient
// store failure leaves the session unresolved, in which case the error is
// returned and a later call may retry.
func (m *SessionManager) Resolve(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.resolved {
		return nil
	}
	if m.token == "" {
		m.toAnonymous()
		return nil
	}

	identity, err := m.store.Load(ctx, m.token)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			m.toAnonymous()
			return nil
		}
		// Store unreachable: stay in StateResolving so gates keep waiting
		// instead of treating the caller as anonymous.
		return err
	}

	m.bind(m.token, identity)
	return nil
}

// Login validates credentials and, on success, binds the new session. On
// failure the state is left untouched and the error carries the generic
// invalid-credentials reason.
func (m *SessionManager) Login(ctx context.Context, username, password string) (*domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, identity, err := m.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	m.bind(token, identity)
	return identity, nil
}

// Register creates a REGULAR identity and auto-logs it in: the transition is
// identical to a successful Login.
func (m *SessionManager) Register(ctx context.Context, input ports.RegisterInput) (*domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, identity, err := m.auth.Register(ctx, input)
	if err != nil {
		return nil, err
	}

	m.bind(token, identity)
	return identity, nil
}

// Logout clears the stored session and moves to Anonymous. Idempotent:
// logging out an anonymous session is a no-op.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == domain.StateAnonymous && m.token == "" {
		return nil
	}
	if err := m.auth.Logout(ctx, m.token); err != nil {
		return err
	}
	m.token = ""
	m.toAnonymous()
	return nil
}

// UpdateProfile merges partial fields into the bound identity. Fails with
// domain.ErrNoSession when nothing is bound; the authentication state is
// never changed by a profile update.
func (m *SessionManager) UpdateProfile(ctx context.Context, update ports.ProfileUpdate) (*domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.identity == nil {
		return nil, domain.ErrNoSession
	}

	identity, err := m.auth.UpdateProfile(ctx, m.token, update)
	if err != nil {
		return nil, err
	}
	m.identity = identity
	return identity, nil
}

// RequestPasswordReset delegates to the auth service; it never reveals
// whether the email is known.
func (m *SessionManager) RequestPasswordReset(ctx context.Context, email string) error {
	return m.auth.RequestPasswordReset(ctx, email)
}

// Token returns the session token, or "" when anonymous.
func (m *SessionManager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Snapshot returns the current session value. The admin flag is true iff the
// session is authenticated and the bound identity is an administrator.
func (m *SessionManager) Snapshot() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case domain.StateResolving:
		return domain.ResolvingSession()
	case domain.StateAnonymous:
		return domain.AnonymousSession()
	default:
		clone := *m.identity
		return domain.BoundSession(&clone)
	}
}

// bind transitions to the authenticated state for the identity's role.
// Callers hold the mutex.
func (m *SessionManager) bind(token string, identity *domain.Identity) {
	m.token = token
	m.identity = identity
	m.state = domain.StateForRole(identity.Role)
	m.resolved = true
}

// toAnonymous transitions to Anonymous. Callers hold the mutex.
func (m *SessionManager) toAnonymous() {
	m.identity = nil
	m.state = domain.StateAnonymous
	m.resolved = true
}
