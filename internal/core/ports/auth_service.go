package ports

import (
	"context"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
)

// RegisterInput carries the data submitted on registration. Role is
// intentionally absent: registration always produces a REGULAR identity.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// ProfileUpdate carries partial profile fields; nil pointers are left
// unchanged on the bound identity.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// CredentialValidator decides whether a (username, password) pair identifies
// a known identity. Pure lookup: no side effects, the caller persists the
// result. The failure is always domain.ErrInvalidCredentials, never a
// distinction between unknown user and wrong password.
type CredentialValidator interface {
	Validate(ctx context.Context, username, password string) (*domain.Identity, error)
}

// AuthService mediates every session-mutating operation: login, registration,
// logout, profile update and password reset requests.
type AuthService interface {
	CredentialValidator

	// Login validates credentials, binds a new session and returns its token.
	Login(ctx context.Context, username, password string) (string, *domain.Identity, error)
	// Register creates a REGULAR identity, appends it to the registry and
	// immediately binds a session for it (auto-login).
	Register(ctx context.Context, input RegisterInput) (string, *domain.Identity, error)
	// Logout clears the session bound to token. Idempotent.
	Logout(ctx context.Context, token string) error
	// UpdateProfile merges partial fields into the identity bound to token
	// and persists both registry and session.
	UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (*domain.Identity, error)
	// RequestPasswordReset accepts any non-empty email and reports success
	// without disclosing whether the address is known.
	RequestPasswordReset(ctx context.Context, email string) error
	// CreateUser lets an administrator create an identity with an explicit role.
	CreateUser(ctx context.Context, input RegisterInput, role string) (*domain.Identity, error)
}
