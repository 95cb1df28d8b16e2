package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/BadhanCB/outfitex-backend/internal/api/dto"
	"github.com/BadhanCB/outfitex-backend/internal/auth"
	"github.com/BadhanCB/outfitex-backend/internal/domain"
	"github.com/BadhanCB/outfitex-backend/internal/service"
	apperrors "github.com/BadhanCB/outfitex-backend/pkg/util"
)

// Accounts covers login, registration and profile photo changes.
type Accounts interface {
	Authenticate(ctx context.Context, email, password string) (*service.AuthResult, error)
	Register(ctx context.Context, role domain.Role, in service.RegisterInput) (*service.AuthResult, error)
	ChangePhoto(ctx context.Context, identity *auth.Identity, raw []byte) (*domain.Principal, error)
}

// AuthHandler exposes credential and identity endpoints for every role.
type AuthHandler struct {
	accounts       Accounts
	maxUploadBytes int64
}

// NewAuthHandler constructs handler.
func NewAuthHandler(accounts Accounts, maxUploadBytes int64) *AuthHandler {
	return &AuthHandler{accounts: accounts, maxUploadBytes: maxUploadBytes}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	result, err := h.accounts.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(authPayload(result))
}

// RegisterBuyer handles POST /user.
func (h *AuthHandler) RegisterBuyer(c *fiber.Ctx) error {
	var req dto.BuyerRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return h.register(c, domain.RoleBuyer, service.RegisterInput{
		Name:            req.Name,
		Username:        req.Username,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ShippingAddress: req.ShippingAddress,
	})
}

// RegisterSeller handles POST /seller.
func (h *AuthHandler) RegisterSeller(c *fiber.Ctx) error {
	var req dto.SellerRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return h.register(c, domain.RoleSeller, service.RegisterInput{
		Name:             req.Name,
		Username:         req.Username,
		Email:            req.Email,
		Phone:            req.Phone,
		Password:         req.Password,
		Address:          req.Address,
		CorporateAddress: req.CorporateAddress,
		NID:              req.NID,
	})
}

func (h *AuthHandler) register(c *fiber.Ctx, role domain.Role, in service.RegisterInput) error {
	result, err := h.accounts.Register(c.UserContext(), role, in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(authPayload(result))
}

// Me handles GET /authenticate-with-jwt.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok || identity.Principal == nil {
		return apperrors.NewUnauthorized(auth.ErrPrincipalNotFound)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"principal": principalResponse(identity.Principal)}})
}

// ChangePhoto handles POST /change-photo.
func (h *AuthHandler) ChangePhoto(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.ErrPrincipalNotFound)
	}
	form, err := multipartForm(c)
	if err != nil {
		return err
	}
	raw, err := readUpload(form, "file", h.maxUploadBytes)
	if err != nil {
		return err
	}

	principal, err := h.accounts.ChangePhoto(c.UserContext(), identity, raw)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"principal": principalResponse(principal)}})
}

func authPayload(result *service.AuthResult) fiber.Map {
	return fiber.Map{
		"data": fiber.Map{
			"principal": principalResponse(result.Principal),
			"auth":      dto.AuthResponse{Token: result.Token, ExpiresAt: result.ExpiresAt},
		},
	}
}
