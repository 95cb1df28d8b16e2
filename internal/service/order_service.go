package service

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BadhanCB/outfitex-backend/internal/domain"
	"github.com/BadhanCB/outfitex-backend/internal/events"
	"github.com/BadhanCB/outfitex-backend/internal/repository"
	apperrors "github.com/BadhanCB/outfitex-backend/pkg/util"
)

// LineItemInput is one requested product and quantity.
type LineItemInput struct {
	ProductID string
	Quantity  int
}

// OrderService places buyer orders.
type OrderService struct {
	products   repository.ProductRepository
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// OrderDependencies bundles requirements for order service.
type OrderDependencies struct {
	Products   repository.ProductRepository
	Orders     repository.OrderRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		products:   deps.Products,
		orders:     deps.Orders,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// PlaceOrder prices the items at their current product price, then bumps
// every sale counter and records the order atomically.
func (s *OrderService) PlaceOrder(ctx context.Context, buyerID string, items []LineItemInput) (*domain.Order, error) {
	if buyerID == "" {
		return nil, apperrors.NewUnauthorized(errors.New("missing buyer identity"))
	}
	merged, err := mergeLineItems(items)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(merged))
	for i, item := range merged {
		ids[i] = item.ProductID
	}
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, readFailure("product", err)
	}
	prices := make(map[string]domain.Product, len(products))
	for _, p := range products {
		prices[p.ID] = p
	}

	order := &domain.Order{BuyerID: buyerID, Items: make([]domain.OrderItem, 0, len(merged))}
	for _, item := range merged {
		product, ok := prices[item.ProductID]
		if !ok {
			return nil, apperrors.NewNotFound("product", map[string]any{"product_id": item.ProductID})
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	if err := s.orders.Place(ctx, order); err != nil {
		s.logger.Error("order placement failed", zap.String("buyer_id", buyerID), zap.Error(err))
		switch {
		case errors.Is(err, repository.ErrQuantityRange):
			return nil, apperrors.NewValidationError("quantity out of range", map[string]any{"max": math.MaxInt32})
		case errors.Is(err, repository.ErrSaleCountUpdate):
			return nil, writeFailure(apperrors.CodeInventoryUpdate, "sale counters not updated", err)
		case errors.Is(err, repository.ErrOrderInsert):
			return nil, writeFailure(apperrors.CodeOrderPersistence, "order not persisted", err)
		default:
			return nil, writeFailure("", "order not persisted", err)
		}
	}

	s.logger.Info("order placed", zap.String("order_id", order.ID), zap.String("buyer_id", buyerID), zap.Int("lines", len(order.Items)))
	if s.dispatcher != nil {
		evt := events.NewEvent(events.EventOrderPlaced,
			events.Actor{Role: domain.RoleBuyer, ID: buyerID},
			events.OrderPlacedPayload{OrderID: order.ID, ProductIDs: ids, Total: order.Total()})
		if err := s.dispatcher.Publish(ctx, evt); err != nil {
			s.logger.Warn("event handler failed", zap.String("event", string(evt.Type)), zap.Error(err))
		}
	}
	return order, nil
}

// mergeLineItems validates the request and folds repeated products into one
// line, keeping first-seen order.
func mergeLineItems(items []LineItemInput) ([]LineItemInput, error) {
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("order needs at least one item", nil)
	}
	index := make(map[string]int, len(items))
	merged := make([]LineItemInput, 0, len(items))
	for i, item := range items {
		id, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid product reference", map[string]any{"index": i, "product_id": item.ProductID})
		}
		if item.Quantity <= 0 || item.Quantity > math.MaxInt32 {
			return nil, apperrors.NewValidationError("quantity must be between 1 and 2147483647", map[string]any{"index": i, "quantity": item.Quantity})
		}
		key := id.String()
		if at, ok := index[key]; ok {
			merged[at].Quantity += item.Quantity
			if merged[at].Quantity > math.MaxInt32 {
				return nil, apperrors.NewValidationError("combined quantity exceeds 2147483647", map[string]any{"product_id": key, "quantity": merged[at].Quantity})
			}
			continue
		}
		index[key] = len(merged)
		merged = append(merged, LineItemInput{ProductID: key, Quantity: item.Quantity})
	}
	return merged, nil
}
