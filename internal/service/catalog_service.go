package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BadhanCB/outfitex-backend/internal/cache"
	"github.com/BadhanCB/outfitex-backend/internal/catalog"
	"github.com/BadhanCB/outfitex-backend/internal/domain"
	"github.com/BadhanCB/outfitex-backend/internal/events"
	"github.com/BadhanCB/outfitex-backend/internal/repository"
)

// Page is a product list with the total number of matching products. The two
// come from independent reads and may disagree under concurrent writes.
//
// A cached named list is never written back once this process has
// invalidated the lists during the read. Invalidations raised by another
// instance are not seen, so such a list can stay stale until its TTL expires.
type Page struct {
	Products []domain.Product
	Total    int64
}

// CatalogService serves catalog reads.
type CatalogService struct {
	products repository.ProductRepository
	cache    *cache.CatalogCache
	logger   *zap.Logger

	// generation counts invalidations. cacheMu orders list writes against them.
	cacheMu    sync.RWMutex
	generation uint64
}

// NewCatalogService constructs the service. cache may be nil.
func NewCatalogService(products repository.ProductRepository, listCache *cache.CatalogCache, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{products: products, cache: listCache, logger: logger}
}

// List runs the page and count reads concurrently. Named lists are served
// from the cache when present.
func (s *CatalogService) List(ctx context.Context, q catalog.Query) (*Page, error) {
	var generation uint64
	if q.Cacheable() {
		generation = s.cacheGeneration()
		var cached Page
		hit, err := s.cache.Get(ctx, q.Name, &cached)
		if err != nil {
			s.logger.Warn("catalog cache read failed", zap.String("list", q.Name), zap.Error(err))
		}
		if hit {
			return &cached, nil
		}
	}

	page := &Page{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := s.products.List(gctx, q)
		page.Products = products
		return err
	})
	g.Go(func() error {
		total, err := s.products.Count(gctx, q)
		page.Total = total
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, readFailure("products", err)
	}
	if page.Products == nil {
		page.Products = []domain.Product{}
	}

	if q.Cacheable() {
		s.storeList(ctx, q.Name, generation, page)
	}
	return page, nil
}

func (s *CatalogService) cacheGeneration() uint64 {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	return s.generation
}

// storeList caches page unless an invalidation ran since generation was read.
func (s *CatalogService) storeList(ctx context.Context, name string, generation uint64, page *Page) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	if s.generation != generation {
		s.logger.Debug("catalog changed during read, list not cached", zap.String("list", name))
		return
	}
	if err := s.cache.Set(ctx, name, page); err != nil {
		s.logger.Warn("catalog cache write failed", zap.String("list", name), zap.Error(err))
	}
}

// GetBySlug returns the full product record.
func (s *CatalogService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, readFailure("product", err)
	}
	return product, nil
}

// RegisterHandlers drops cached named lists whenever products or sale
// counters change.
func (s *CatalogService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil || !s.cache.Enabled() {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventProductCreated,
		events.EventProductFeatured,
		events.EventOrderPlaced,
	} {
		dispatcher.Subscribe(eventType, s.invalidate)
	}
}

func (s *CatalogService) invalidate(ctx context.Context, event events.Event) error {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.generation++
	if err := s.cache.Invalidate(ctx, catalog.NamedLists()...); err != nil {
		return err
	}
	s.logger.Debug("catalog cache invalidated", zap.String("event", string(event.Type)))
	return nil
}
