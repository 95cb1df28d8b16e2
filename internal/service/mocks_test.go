package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/BadhanCB/outfitex-backend/internal/catalog"
	"github.com/BadhanCB/outfitex-backend/internal/domain"
	"github.com/BadhanCB/outfitex-backend/internal/repository"
)

// MockPrincipalRepo is a mock implementation of repository.PrincipalRepository.
type MockPrincipalRepo struct {
	mock.Mock
	role domain.Role
}

func newMockPrincipalRepo(role domain.Role) *MockPrincipalRepo {
	return &MockPrincipalRepo{role: role}
}

func (m *MockPrincipalRepo) Role() domain.Role { return m.role }

func (m *MockPrincipalRepo) Create(ctx context.Context, principal *domain.Principal) error {
	args := m.Called(ctx, principal)
	return args.Error(0)
}

func (m *MockPrincipalRepo) GetByID(ctx context.Context, id string) (*domain.Principal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}

func (m *MockPrincipalRepo) GetByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}

func (m *MockPrincipalRepo) UpdatePhoto(ctx context.Context, id string, photo domain.Image) error {
	args := m.Called(ctx, id, photo)
	return args.Error(0)
}

func (m *MockPrincipalRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// MockProductRepo is a mock implementation of repository.ProductRepository.
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepo) List(ctx context.Context, q catalog.Query) ([]domain.Product, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepo) Count(ctx context.Context, q catalog.Query) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepo) SetFeatured(ctx context.Context, slug string, featured bool) error {
	args := m.Called(ctx, slug, featured)
	return args.Error(0)
}

func (m *MockProductRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

type stubTranscoder struct {
	out domain.Image
	err error
}

func (s stubTranscoder) Transcode([]byte) (domain.Image, error) {
	return s.out, s.err
}

// memStorefront keeps products and orders in memory with the same
// all-or-nothing placement contract as the Postgres repository.
type memStorefront struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	orders   []domain.Order
	failNext error
}

func newMemStorefront(products ...domain.Product) *memStorefront {
	s := &memStorefront{products: map[string]*domain.Product{}}
	for i := range products {
		p := products[i]
		s.products[p.ID] = &p
	}
	return s
}

func (s *memStorefront) Create(_ context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.ID = uuid.NewString()
	product.CreatedAt = time.Now()
	cp := *product
	s.products[cp.ID] = &cp
	return nil
}

func (s *memStorefront) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *memStorefront) GetByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *memStorefront) List(_ context.Context, q catalog.Query) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Product
	for _, p := range s.products {
		if matches(q.Filter, p) {
			out = append(out, *p)
		}
	}
	if q.Order.Field == catalog.FieldPrice {
		sort.Slice(out, func(i, j int) bool {
			if q.Order.Direction == catalog.Desc {
				return out[i].Price.GreaterThan(out[j].Price)
			}
			return out[i].Price.LessThan(out[j].Price)
		})
	}
	return out, nil
}

func (s *memStorefront) Count(ctx context.Context, q catalog.Query) (int64, error) {
	out, err := s.List(ctx, q)
	return int64(len(out)), err
}

func (s *memStorefront) SetFeatured(_ context.Context, slug string, featured bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Slug == slug {
			p.Featured = featured
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (s *memStorefront) SlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStorefront) Place(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	for _, item := range order.Items {
		if _, ok := s.products[item.ProductID]; !ok {
			return repository.ErrSaleCountUpdate
		}
	}
	for _, item := range order.Items {
		s.products[item.ProductID].SaleCount += int64(item.Quantity)
	}
	order.ID = uuid.NewString()
	order.CreatedAt = time.Now()
	s.orders = append(s.orders, *order)
	return nil
}

func (s *memStorefront) saleCount(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].SaleCount
}

func matches(f catalog.Filter, p *domain.Product) bool {
	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if c == p.Category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Collection != "" && f.Collection != p.Collection {
		return false
	}
	if f.Featured && !p.Featured {
		return false
	}
	return true
}
