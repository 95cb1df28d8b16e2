package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/BadhanCB/outfitex-backend/internal/api/dto"
	"github.com/BadhanCB/outfitex-backend/internal/catalog"
	"github.com/BadhanCB/outfitex-backend/internal/domain"
	"github.com/BadhanCB/outfitex-backend/internal/service"
	apperrors "github.com/BadhanCB/outfitex-backend/pkg/util"
)

// CatalogReader serves the read-only product endpoints.
type CatalogReader interface {
	List(ctx context.Context, q catalog.Query) (*service.Page, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

// CatalogHandler exposes product browsing endpoints.
type CatalogHandler struct {
	catalog CatalogReader
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(reader CatalogReader) *CatalogHandler {
	return &CatalogHandler{catalog: reader}
}

// All GET /products.
func (h *CatalogHandler) All(c *fiber.Ctx) error {
	return h.list(c, catalog.All())
}

// Filter POST /products.
func (h *CatalogHandler) Filter(c *fiber.Ctx) error {
	var req dto.CatalogFilterRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	return h.list(c, catalog.Compose(req.Categories, req.Sort))
}

// ByCollection GET /products/collection/:name.
func (h *CatalogHandler) ByCollection(c *fiber.Ctx) error {
	return h.list(c, catalog.ByCollection(c.Params("name")))
}

// ByCategory GET /products/category/:name.
func (h *CatalogHandler) ByCategory(c *fiber.Ctx) error {
	return h.list(c, catalog.ByCategory(c.Params("name")))
}

// Featured GET /products/featured.
func (h *CatalogHandler) Featured(c *fiber.Ctx) error {
	return h.list(c, catalog.Featured())
}

// TopSelling GET /products/top-selling.
func (h *CatalogHandler) TopSelling(c *fiber.Ctx) error {
	return h.list(c, catalog.TopSelling())
}

// Latest GET /products/latest.
func (h *CatalogHandler) Latest(c *fiber.Ctx) error {
	return h.list(c, catalog.Latest())
}

// GetBySlug GET /product/:slug.
func (h *CatalogHandler) GetBySlug(c *fiber.Ctx) error {
	product, err := h.catalog.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productDetail(product)})
}

func (h *CatalogHandler) list(c *fiber.Ctx, q catalog.Query) error {
	page, err := h.catalog.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	resp := dto.ProductListResponse{
		Products: make([]dto.ProductSummary, 0, len(page.Products)),
		Total:    page.Total,
	}
	for i := range page.Products {
		resp.Products = append(resp.Products, productSummary(&page.Products[i]))
	}
	return c.JSON(resp)
}
