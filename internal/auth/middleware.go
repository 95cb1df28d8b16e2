package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/BadhanCB/outfitex-backend/internal/domain"
	apperrors "github.com/BadhanCB/outfitex-backend/pkg/util"
)

const identityKey = "auth_identity"

var errMissingBearer = errors.New("missing bearer token")

// Middleware guards routes with bearer token verification.
type Middleware struct {
	verifier *Verifier
	logger   *zap.Logger
}

// NewMiddleware constructs middleware.
func NewMiddleware(verifier *Verifier, logger *zap.Logger) *Middleware {
	return &Middleware{verifier: verifier, logger: logger}
}

// Require admits callers whose verified role is in roles. With no roles any
// principal is admitted. Rejections never fall through to anonymous access.
func (m *Middleware) Require(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return apperrors.NewUnauthorized(err)
		}

		identity, err := m.verifier.Verify(c.UserContext(), token, roles...)
		if err != nil {
			return m.reject(c, err)
		}

		SetIdentity(c, identity)
		return c.Next()
	}
}

func (m *Middleware) reject(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrStorageTimeout):
		return apperrors.NewStorageTimeout(err)
	case errors.Is(err, ErrMalformedToken),
		errors.Is(err, ErrBadSignature),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrWrongRole),
		errors.Is(err, ErrPrincipalNotFound),
		errors.Is(err, ErrStaleClaim):
		m.logger.Warn("token rejected", zap.String("path", c.Path()), zap.Error(err))
		return apperrors.NewUnauthorized(err)
	default:
		return apperrors.MapError(err)
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingBearer
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errMissingBearer
	}
	return strings.TrimSpace(parts[1]), nil
}

// SetIdentity attaches a verified caller to the request.
func SetIdentity(c *fiber.Ctx, identity *Identity) {
	c.Locals(identityKey, identity)
}

// IdentityFromContext retrieves the verified caller.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
