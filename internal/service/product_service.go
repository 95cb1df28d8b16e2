package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BadhanCB/outfitex-backend/internal/auth"
	"github.com/BadhanCB/outfitex-backend/internal/domain"
	"github.com/BadhanCB/outfitex-backend/internal/events"
	"github.com/BadhanCB/outfitex-backend/internal/media"
	"github.com/BadhanCB/outfitex-backend/internal/repository"
	"github.com/BadhanCB/outfitex-backend/internal/slug"
	apperrors "github.com/BadhanCB/outfitex-backend/pkg/util"
)

// ProductService handles seller and admin writes to the catalog.
type ProductService struct {
	products   repository.ProductRepository
	slugs      *slug.Generator
	images     media.ImageTranscoder
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ProductDependencies bundles requirements for product service.
type ProductDependencies struct {
	Products   repository.ProductRepository
	Slugs      *slug.Generator
	Images     media.ImageTranscoder
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewProductService constructs the service.
func NewProductService(deps ProductDependencies) *ProductService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	slugs := deps.Slugs
	if slugs == nil {
		slugs = slug.NewGenerator(nil)
	}
	return &ProductService{
		products:   deps.Products,
		slugs:      slugs,
		images:     deps.Images,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// ProductInput describes a new product as submitted by a seller.
type ProductInput struct {
	Name        string
	Price       string
	Category    string
	Collection  string
	Description string
	Image       []byte
}

// Create stores a new product owned by the calling seller. The slug is
// assigned here and never changes afterwards.
func (s *ProductService) Create(ctx context.Context, seller *auth.Identity, in ProductInput) (*domain.Product, error) {
	if seller == nil || seller.Role != domain.RoleSeller {
		return nil, apperrors.NewUnauthorized(auth.ErrWrongRole)
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Collection = strings.TrimSpace(in.Collection)
	in.Description = strings.TrimSpace(in.Description)

	var missing []string
	for _, f := range []requiredField{
		{"name", in.Name},
		{"price", strings.TrimSpace(in.Price)},
		{"category", in.Category},
		{"collection", in.Collection},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(in.Image) == 0 {
		missing = append(missing, "file")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", map[string]any{"fields": missing})
	}

	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || price.IsNegative() {
		return nil, apperrors.NewValidationError("price must be a non-negative number", map[string]any{"price": in.Price})
	}

	image, err := s.images.Transcode(in.Image)
	if err != nil {
		if errors.Is(err, media.ErrEmptyUpload) {
			return nil, apperrors.NewValidationError("file is required", nil)
		}
		return nil, apperrors.NewUpstreamError("image transcode", err)
	}

	productSlug, err := s.slugs.Assign(ctx, in.Name)
	if err != nil {
		return nil, writeFailure("", "product slug not assigned", err)
	}

	product := &domain.Product{
		Slug:        productSlug,
		Name:        in.Name,
		Price:       price,
		Category:    in.Category,
		Collection:  in.Collection,
		Description: in.Description,
		Image:       image,
		SellerID:    seller.ID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, writeFailure("", "Failed to create new product", err)
	}

	s.logger.Info("product created", zap.String("slug", product.Slug), zap.String("seller_id", seller.ID))
	s.publish(ctx, events.NewEvent(events.EventProductCreated,
		events.Actor{Role: seller.Role, ID: seller.ID},
		events.ProductCreatedPayload{ProductID: product.ID, Slug: product.Slug, Category: product.Category}))
	return product, nil
}

// SetFeatured flags or unflags a product for the featured list.
func (s *ProductService) SetFeatured(ctx context.Context, admin *auth.Identity, productSlug string, featured bool) error {
	if admin == nil || admin.Role != domain.RoleAdmin {
		return apperrors.NewUnauthorized(auth.ErrWrongRole)
	}
	productSlug = strings.TrimSpace(productSlug)
	if productSlug == "" {
		return apperrors.NewValidationError("slug is required", nil)
	}

	if err := s.products.SetFeatured(ctx, productSlug, featured); err != nil {
		return readFailure("product", err)
	}

	s.logger.Info("product featured flag changed", zap.String("slug", productSlug), zap.Bool("featured", featured))
	s.publish(ctx, events.NewEvent(events.EventProductFeatured,
		events.Actor{Role: admin.Role, ID: admin.ID},
		events.ProductFeaturedPayload{Slug: productSlug, Featured: featured}))
	return nil
}

func (s *ProductService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}
