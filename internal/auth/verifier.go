package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/BadhanCB/outfitex-backend/internal/domain"
	"github.com/BadhanCB/outfitex-backend/internal/repository"
)

var (
	ErrWrongRole         = errors.New("role not allowed")
	ErrPrincipalNotFound = errors.New("principal not found")
	ErrStorageTimeout    = errors.New("principal lookup timed out")
)

// Identity is a verified caller.
type Identity struct {
	Role      domain.Role
	ID        string
	Principal *domain.Principal
}

// PrincipalStores resolves the store implied by a role.
type PrincipalStores interface {
	Store(role domain.Role) (repository.PrincipalRepository, bool)
}

// Verifier resolves bearer tokens against the stored principals.
type Verifier struct {
	tokens *TokenManager
	stores PrincipalStores
}

// NewVerifier constructs a verifier.
func NewVerifier(tokens *TokenManager, stores PrincipalStores) *Verifier {
	return &Verifier{tokens: tokens, stores: stores}
}

// Verify decodes the token, checks the role against allowed, loads the
// principal from its role's store and requires every cached field to match.
// An empty allowed list admits any known role.
func (v *Verifier) Verify(ctx context.Context, token string, allowed ...domain.Role) (*Identity, error) {
	claims, err := v.tokens.Decode(token)
	if err != nil {
		return nil, err
	}
	if !NewRoleSet(allowed...).Allows(claims.Role) {
		return nil, ErrWrongRole
	}

	store, ok := v.stores.Store(claims.Role)
	if !ok {
		return nil, ErrWrongRole
	}
	principal, err := store.GetByID(ctx, claims.PrincipalID())
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrPrincipalNotFound
		case errors.Is(err, context.DeadlineExceeded):
			return nil, errors.Join(ErrStorageTimeout, err)
		default:
			return nil, err
		}
	}
	if err := MatchClaim(claims, principal); err != nil {
		return nil, err
	}

	principal.Role = claims.Role
	return &Identity{Role: claims.Role, ID: principal.ID, Principal: principal.Sanitized()}, nil
}
