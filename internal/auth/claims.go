package auth

import (
	"errors"

	"github.com/BadhanCB/outfitex-backend/internal/domain"
)

// ErrStaleClaim means the token describes a principal that has since changed.
var ErrStaleClaim = errors.New("stale identity claim")

// MatchClaim compares the cached identity fields of a token against the
// stored principal. It needs no signing key.
func MatchClaim(claims *Claims, principal *domain.Principal) error {
	if claims == nil || principal == nil {
		return ErrStaleClaim
	}
	if claims.Subject != principal.ID ||
		claims.Name != principal.Name ||
		claims.Username != principal.Username ||
		claims.Email != principal.Email ||
		claims.Phone != principal.Phone {
		return ErrStaleClaim
	}
	if claims.Slug != "" && claims.Slug != principal.Slug {
		return ErrStaleClaim
	}
	return nil
}
