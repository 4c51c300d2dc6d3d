package store

import (
	"context"

	"storegate/internal/identity"
	"storegate/pkg/domain"
	dErrors "storegate/pkg/domainerrors"
)

// ErrNotFound keeps storage-specific misses consistent across memory and
// postgres implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "user not found")

// UserStore is the primary-store contract this subsystem needs. The full
// storefront schema lives elsewhere; only credential fields surface here.
type UserStore interface {
	GetByIdentifier(ctx context.Context, id domain.Identifier) (identity.UserCredential, error)
	UpdatePasswordHash(ctx context.Context, id domain.Identifier, hash string) error
	UpdateRole(ctx context.Context, id domain.Identifier, role domain.Role) error
	Save(ctx context.Context, user identity.UserCredential) error
}
