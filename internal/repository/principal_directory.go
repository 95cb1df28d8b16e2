package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/BadhanCB/outfitex-backend/internal/domain"
)

// PrincipalDirectory is an ordered set of principal stores. Lookups that do
// not know the role query the stores in order and stop at the first hit.
type PrincipalDirectory struct {
	stores []PrincipalRepository
}

// NewPrincipalDirectory keeps the stores in the given precedence order.
func NewPrincipalDirectory(stores ...PrincipalRepository) *PrincipalDirectory {
	return &PrincipalDirectory{stores: stores}
}

// Store returns the store holding principals of the given role.
func (d *PrincipalDirectory) Store(role domain.Role) (PrincipalRepository, bool) {
	for _, store := range d.stores {
		if store.Role() == role {
			return store, true
		}
	}
	return nil, false
}

// FindByEmail returns the first principal with this email in precedence
// order, or pgx.ErrNoRows when no store has it.
func (d *PrincipalDirectory) FindByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	for _, store := range d.stores {
		principal, err := store.GetByEmail(ctx, email)
		if err == nil {
			principal.Role = store.Role()
			return principal, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	return nil, pgx.ErrNoRows
}

// Roles lists the roles in precedence order.
func (d *PrincipalDirectory) Roles() []domain.Role {
	roles := make([]domain.Role, 0, len(d.stores))
	for _, store := range d.stores {
		roles = append(roles, store.Role())
	}
	return roles
}
