package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/BadhanCB/outfitex-backend/internal/events"
)

// ActivityLog writes one structured log line per storefront event.
type ActivityLog struct {
	logger *zap.Logger
}

// NewActivityLog creates the subscriber.
func NewActivityLog(logger *zap.Logger) *ActivityLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityLog{logger: logger.Named("activity")}
}

// RegisterHandlers subscribes to every storefront event.
func (a *ActivityLog) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, t := range []events.EventType{
		events.EventPrincipalRegistered,
		events.EventProductCreated,
		events.EventProductFeatured,
		events.EventOrderPlaced,
	} {
		dispatcher.Subscribe(t, a.record)
	}
}

func (a *ActivityLog) record(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("role", string(event.Actor.Role)),
		zap.String("actor_id", event.Actor.ID),
	}
	switch p := event.Payload.(type) {
	case events.PrincipalRegisteredPayload:
		fields = append(fields, zap.String("username", p.Username))
	case events.ProductCreatedPayload:
		fields = append(fields, zap.String("product_id", p.ProductID), zap.String("slug", p.Slug), zap.String("category", p.Category))
	case events.ProductFeaturedPayload:
		fields = append(fields, zap.String("slug", p.Slug), zap.Bool("featured", p.Featured))
	case events.OrderPlacedPayload:
		fields = append(fields, zap.String("order_id", p.OrderID), zap.Int("products", len(p.ProductIDs)), zap.Stringer("total", p.Total))
	}
	a.logger.Info(string(event.Type), fields...)
	return nil
}
