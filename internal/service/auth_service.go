package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/BadhanCB/outfitex-backend/internal/auth"
	"github.com/BadhanCB/outfitex-backend/internal/domain"
	"github.com/BadhanCB/outfitex-backend/internal/events"
	"github.com/BadhanCB/outfitex-backend/internal/media"
	"github.com/BadhanCB/outfitex-backend/internal/repository"
	"github.com/BadhanCB/outfitex-backend/internal/slug"
	apperrors "github.com/BadhanCB/outfitex-backend/pkg/util"
)

// ErrInvalidCredentials is the cause recorded when a password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService coordinates registration, login and profile photo flows.
type AuthService struct {
	directory  *repository.PrincipalDirectory
	hasher     auth.PasswordHasher
	tokens     *auth.TokenManager
	slugs      *slug.Generator
	images     media.ImageTranscoder
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AuthDependencies encapsulates requirements for auth service.
type AuthDependencies struct {
	Directory  *repository.PrincipalDirectory
	Hasher     auth.PasswordHasher
	Tokens     *auth.TokenManager
	Slugs      *slug.Generator
	Images     media.ImageTranscoder
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	slugs := deps.Slugs
	if slugs == nil {
		slugs = slug.NewGenerator(nil)
	}
	return &AuthService{
		directory:  deps.Directory,
		hasher:     deps.Hasher,
		tokens:     deps.Tokens,
		slugs:      slugs,
		images:     deps.Images,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// AuthResult is a sanitized principal with a freshly issued token.
type AuthResult struct {
	Principal *domain.Principal
	Token     string
	ExpiresAt time.Time
}

// RegisterInput carries the self-registration fields of every role.
type RegisterInput struct {
	Name             string
	Username         string
	Email            string
	Phone            string
	Password         string
	ShippingAddress  string
	Address          string
	CorporateAddress string
	NID              string
}

// Authenticate queries the principal stores in precedence order and checks
// the password of the first match.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	principal, err := s.directory.FindByEmail(ctx, email)
	if err != nil {
		return nil, readFailure("principal", err)
	}
	if err := s.hasher.Compare(principal.PasswordHash, password); err != nil {
		s.logger.Warn("login rejected", zap.String("role", string(principal.Role)))
		return nil, apperrors.NewUnauthorized(ErrInvalidCredentials)
	}
	return s.issue(principal)
}

// Register creates a buyer or seller. Administrators are provisioned out of band.
func (s *AuthService) Register(ctx context.Context, role domain.Role, in RegisterInput) (*AuthResult, error) {
	if role != domain.RoleBuyer && role != domain.RoleSeller {
		return nil, apperrors.NewValidationError("role cannot self-register", map[string]any{"role": role})
	}
	in = trimInput(in)
	if missing := missingFields(role, in); len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", map[string]any{"fields": missing})
	}

	store, ok := s.directory.Store(role)
	if !ok {
		return nil, apperrors.NewInternalError(errors.New("no store for role " + string(role)))
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewUpstreamError("password hashing", err)
	}

	principal := &domain.Principal{
		Role:             role,
		Name:             in.Name,
		Username:         in.Username,
		Email:            in.Email,
		Phone:            in.Phone,
		PasswordHash:     hash,
		ShippingAddress:  in.ShippingAddress,
		Address:          in.Address,
		CorporateAddress: in.CorporateAddress,
		NID:              in.NID,
	}
	if role == domain.RoleSeller {
		principal.Slug, err = s.slugs.Assign(ctx, in.Name)
		if err != nil {
			return nil, writeFailure("", "seller slug not assigned", err)
		}
	}

	if err := store.Create(ctx, principal); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewValidationError("email or username already registered", nil)
		}
		return nil, writeFailure("", "principal not persisted", err)
	}

	s.logger.Info("principal registered", zap.String("role", string(role)), zap.String("id", principal.ID))
	s.publish(ctx, events.NewEvent(events.EventPrincipalRegistered,
		events.Actor{Role: role, ID: principal.ID},
		events.PrincipalRegisteredPayload{Email: principal.Email, Username: principal.Username}))

	return s.issue(principal)
}

// ChangePhoto transcodes raw and stores it on the caller's own record.
func (s *AuthService) ChangePhoto(ctx context.Context, identity *auth.Identity, raw []byte) (*domain.Principal, error) {
	if identity == nil {
		return nil, apperrors.NewUnauthorized(auth.ErrPrincipalNotFound)
	}
	if len(raw) == 0 {
		return nil, apperrors.NewValidationError("file is required", nil)
	}
	store, ok := s.directory.Store(identity.Role)
	if !ok {
		return nil, apperrors.NewUnauthorized(auth.ErrWrongRole)
	}

	photo, err := s.images.Transcode(raw)
	if err != nil {
		if errors.Is(err, media.ErrEmptyUpload) {
			return nil, apperrors.NewValidationError("file is required", nil)
		}
		return nil, apperrors.NewUpstreamError("image transcode", err)
	}

	if err := store.UpdatePhoto(ctx, identity.ID, photo); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("principal", nil)
		}
		return nil, writeFailure("", "photo not persisted", err)
	}

	updated := domain.Principal{ID: identity.ID, Role: identity.Role}
	if identity.Principal != nil {
		updated = *identity.Principal
	}
	updated.Photo = photo
	return &updated, nil
}

func (s *AuthService) issue(principal *domain.Principal) (*AuthResult, error) {
	token, exp, err := s.tokens.Issue(principal)
	if err != nil {
		return nil, apperrors.NewUpstreamError("token signing", err)
	}
	return &AuthResult{Principal: principal.Sanitized(), Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimInput(in RegisterInput) RegisterInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.ShippingAddress = strings.TrimSpace(in.ShippingAddress)
	in.Address = strings.TrimSpace(in.Address)
	in.CorporateAddress = strings.TrimSpace(in.CorporateAddress)
	in.NID = strings.TrimSpace(in.NID)
	return in
}

type requiredField struct {
	name  string
	value string
}

func missingFields(role domain.Role, in RegisterInput) []string {
	required := []requiredField{
		{"name", in.Name},
		{"username", in.Username},
		{"email", in.Email},
		{"phone", in.Phone},
		{"password", in.Password},
	}
	switch role {
	case domain.RoleBuyer:
		required = append(required, requiredField{"shipping_address", in.ShippingAddress})
	case domain.RoleSeller:
		required = append(required,
			requiredField{"address", in.Address},
			requiredField{"corporate_address", in.CorporateAddress},
			requiredField{"nid", in.NID},
		)
	}

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
