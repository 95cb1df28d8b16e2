package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BadhanCB/outfitex-backend/internal/auth"
	"github.com/BadhanCB/outfitex-backend/internal/catalog"
	"github.com/BadhanCB/outfitex-backend/internal/domain"
	"github.com/BadhanCB/outfitex-backend/internal/service"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) List(ctx context.Context, q catalog.Query) (*service.Page, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page), args.Error(1)
}

func (m *MockCatalog) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type MockProducts struct {
	mock.Mock
}

func (m *MockProducts) Create(ctx context.Context, seller *auth.Identity, in service.ProductInput) (*domain.Product, error) {
	args := m.Called(ctx, seller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProducts) SetFeatured(ctx context.Context, admin *auth.Identity, slug string, featured bool) error {
	args := m.Called(ctx, admin, slug, featured)
	return args.Error(0)
}

type MockOrders struct {
	mock.Mock
}

func (m *MockOrders) PlaceOrder(ctx context.Context, buyerID string, items []service.LineItemInput) (*domain.Order, error) {
	args := m.Called(ctx, buyerID, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) Authenticate(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAccounts) Register(ctx context.Context, role domain.Role, in service.RegisterInput) (*service.AuthResult, error) {
	args := m.Called(ctx, role, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAccounts) ChangePhoto(ctx context.Context, identity *auth.Identity, raw []byte) (*domain.Principal, error) {
	args := m.Called(ctx, identity, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }
