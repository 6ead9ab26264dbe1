package ports

import (
	"context"
	"time"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
)

// SessionStore persists the identity bound to a session token so that a
// client can resume its session without re-authenticating.
//
// Load must treat a corrupt or unparsable stored value exactly like an
// absent one: return domain.ErrNoSession, never a decoding error.
type SessionStore interface {
	// Save stores identity as the session bound to token, fully replacing
	// any prior value.
	Save(ctx context.Context, token string, identity *domain.Identity) error
	// Load returns the identity bound to token, or domain.ErrNoSession.
	Load(ctx context.Context, token string) (*domain.Identity, error)
	// Clear removes the session bound to token. Clearing an absent session
	// is a no-op.
	Clear(ctx context.Context, token string) error
}

// ResetTokenStore holds short-lived password reset tokens.
type ResetTokenStore interface {
	Set(ctx context.Context, token, userID string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}
