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

// OrderPlacer places buyer orders.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, buyerID string, items []service.LineItemInput) (*domain.Order, error)
}

// OrderHandler exposes the buyer order endpoint.
type OrderHandler struct {
	orders OrderPlacer
}

// NewOrderHandler constructs handler.
func NewOrderHandler(orders OrderPlacer) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Place POST /order.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok || identity.Role != domain.RoleBuyer {
		return apperrors.NewUnauthorized(auth.ErrWrongRole)
	}
	var req dto.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	items := make([]service.LineItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.LineItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.orders.PlaceOrder(c.UserContext(), identity.ID, items)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": orderResponse(order)})
}
