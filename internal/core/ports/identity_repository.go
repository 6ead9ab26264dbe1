package ports

import (
	"context"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
)

// IdentityRepository is the durable registry of identities created via
// registration or admin user management. Append-only from the client's
// perspective; Update only touches profile fields of an existing record.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	FindByUsername(ctx context.Context, username string) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
	Update(ctx context.Context, identity *domain.Identity) error
	List(ctx context.Context, page, limit int) ([]*domain.Identity, int64, error)
	Count(ctx context.Context) (int64, error)
}
