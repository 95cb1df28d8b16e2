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

// ProductWriter mutates the catalog.
type ProductWriter interface {
	Create(ctx context.Context, seller *auth.Identity, in service.ProductInput) (*domain.Product, error)
	SetFeatured(ctx context.Context, admin *auth.Identity, slug string, featured bool) error
}

// ProductHandler exposes seller and admin product endpoints.
type ProductHandler struct {
	products       ProductWriter
	maxUploadBytes int64
}

// NewProductHandler constructs handler.
func NewProductHandler(products ProductWriter, maxUploadBytes int64) *ProductHandler {
	return &ProductHandler{products: products, maxUploadBytes: maxUploadBytes}
}

// Create POST /products/new.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.ErrPrincipalNotFound)
	}
	form, err := multipartForm(c)
	if err != nil {
		return err
	}
	image, err := readUpload(form, "file", h.maxUploadBytes)
	if err != nil {
		return err
	}

	product, err := h.products.Create(c.UserContext(), identity, service.ProductInput{
		Name:        formValue(form, "name"),
		Price:       formValue(form, "price"),
		Category:    formValue(form, "category"),
		Collection:  formValue(form, "collection"),
		Description: formValue(form, "description"),
		Image:       image,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Product created Successfully",
		"data":    productDetail(product),
	})
}

// SetFeatured PATCH /products/:slug/featured.
func (h *ProductHandler) SetFeatured(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.ErrPrincipalNotFound)
	}
	var req dto.FeatureProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Featured == nil {
		return apperrors.NewValidationError("featured required", nil)
	}

	slug := c.Params("slug")
	if err := h.products.SetFeatured(c.UserContext(), identity, slug, *req.Featured); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"slug": slug, "featured": *req.Featured}})
}
