package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BadhanCB/outfitex-backend/internal/domain"
	"github.com/BadhanCB/outfitex-backend/internal/events"
	"github.com/BadhanCB/outfitex-backend/internal/repository"
	apperrors "github.com/BadhanCB/outfitex-backend/pkg/util"
)

var (
	productOne = uuid.MustParse("11111111-1111-4111-8111-111111111111").String()
	productTwo = uuid.MustParse("22222222-2222-4222-8222-222222222222").String()
)

func newOrderFixture() (*memStorefront, *OrderService) {
	store := newMemStorefront(
		domain.Product{ID: productOne, Slug: "one", Price: decimal.NewFromInt(10), SaleCount: 0},
		domain.Product{ID: productTwo, Slug: "two", Price: decimal.RequireFromString("4.25"), SaleCount: 5},
	)
	return store, NewOrderService(OrderDependencies{Products: store, Orders: store})
}

func TestPlaceOrder_IncrementsEveryCounter(t *testing.T) {
	store, svc := newOrderFixture()

	order, err := svc.PlaceOrder(context.Background(), "b-1", []LineItemInput{
		{ProductID: productOne, Quantity: 1},
		{ProductID: productTwo, Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), store.saleCount(productOne))
	assert.Equal(t, int64(6), store.saleCount(productTwo))
	require.Len(t, store.orders, 1)
	assert.Equal(t, order.ID, store.orders[0].ID)
	require.Len(t, order.Items, 2)
	assert.Equal(t, productOne, order.Items[0].ProductID)
	assert.Equal(t, productTwo, order.Items[1].ProductID)
	assert.Equal(t, "14.25", order.Total().String())
}

func TestPlaceOrder_ConcurrentOrdersKeepEveryIncrement(t *testing.T) {
	store, svc := newOrderFixture()

	const buyers = 50
	var wg sync.WaitGroup
	errs := make(chan error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.PlaceOrder(context.Background(), fmt.Sprintf("b-%d", i), []LineItemInput{
				{ProductID: productOne, Quantity: 1},
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, int64(buyers), store.saleCount(productOne))
	assert.Len(t, store.orders, buyers)
}

func TestPlaceOrder_MergesDuplicateLines(t *testing.T) {
	store, svc := newOrderFixture()

	order, err := svc.PlaceOrder(context.Background(), "b-1", []LineItemInput{
		{ProductID: productTwo, Quantity: 2},
		{ProductID: productOne, Quantity: 1},
		{ProductID: productTwo, Quantity: 3},
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 2)
	assert.Equal(t, productTwo, order.Items[0].ProductID)
	assert.Equal(t, 5, order.Items[0].Quantity)
	assert.Equal(t, int64(10), store.saleCount(productTwo))
}

func TestPlaceOrder_Validation(t *testing.T) {
	_, svc := newOrderFixture()
	ctx := context.Background()

	tests := []struct {
		name  string
		items []LineItemInput
	}{
		{name: "empty"},
		{name: "bad reference", items: []LineItemInput{{ProductID: "1", Quantity: 1}}},
		{name: "zero quantity", items: []LineItemInput{{ProductID: productOne, Quantity: 0}}},
		{name: "negative quantity", items: []LineItemInput{{ProductID: productOne, Quantity: -2}}},
		{name: "quantity above int32", items: []LineItemInput{{ProductID: productOne, Quantity: math.MaxInt32 + 1}}},
		{name: "merged quantity above int32", items: []LineItemInput{
			{ProductID: productOne, Quantity: 1 << 30},
			{ProductID: productTwo, Quantity: 1},
			{ProductID: productOne, Quantity: 1 << 30},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(ctx, "b-1", tt.items)
			assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation), "got %v", err)
		})
	}
}

func TestPlaceOrder_QuantityBoundaryKeepsCounters(t *testing.T) {
	store, svc := newOrderFixture()

	_, err := svc.PlaceOrder(context.Background(), "b-1", []LineItemInput{
		{ProductID: productOne, Quantity: math.MaxInt32},
		{ProductID: productOne, Quantity: 1},
	})
	require.True(t, apperrors.IsCode(err, apperrors.CodeValidation), "got %v", err)
	assert.Zero(t, store.saleCount(productOne))
	assert.Empty(t, store.orders)

	order, err := svc.PlaceOrder(context.Background(), "b-1", []LineItemInput{
		{ProductID: productOne, Quantity: math.MaxInt32},
	})
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt32, order.Items[0].Quantity)
	assert.Equal(t, int64(math.MaxInt32), store.saleCount(productOne))
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	store, svc := newOrderFixture()

	_, err := svc.PlaceOrder(context.Background(), "b-1", []LineItemInput{
		{ProductID: productOne, Quantity: 1},
		{ProductID: uuid.NewString(), Quantity: 1},
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	assert.Zero(t, store.saleCount(productOne))
	assert.Empty(t, store.orders)
}

func TestPlaceOrder_PlacementFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{name: "counters", err: fmt.Errorf("%w: 1 of 2", repository.ErrSaleCountUpdate), code: apperrors.CodeInventoryUpdate},
		{name: "order insert", err: fmt.Errorf("%w: disk full", repository.ErrOrderInsert), code: apperrors.CodeOrderPersistence},
		{name: "timeout", err: fmt.Errorf("%w: %w", repository.ErrOrderInsert, context.DeadlineExceeded), code: apperrors.CodeStorageTimeout},
		{name: "quantity range", err: fmt.Errorf("%w: 4294967297 for product p-1", repository.ErrQuantityRange), code: apperrors.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, svc := newOrderFixture()
			store.failNext = tt.err

			_, err := svc.PlaceOrder(context.Background(), "b-1", []LineItemInput{{ProductID: productOne, Quantity: 1}})
			assert.True(t, apperrors.IsCode(err, tt.code), "got %v", err)
			assert.Zero(t, store.saleCount(productOne))
			assert.Empty(t, store.orders)
		})
	}
}

func TestPlaceOrder_PublishesEvent(t *testing.T) {
	repo := new(MockProductRepo)
	repo.On("GetByIDs", mock.Anything, []string{productOne}).
		Return([]domain.Product{{ID: productOne, Price: decimal.NewFromInt(7)}}, nil).Once()
	store := newMemStorefront(domain.Product{ID: productOne})

	dispatcher := events.NewInMemoryDispatcher()
	var got events.Event
	dispatcher.Subscribe(events.EventOrderPlaced, func(_ context.Context, e events.Event) error {
		got = e
		return errors.New("subscriber failure does not fail the order")
	})

	svc := NewOrderService(OrderDependencies{Products: repo, Orders: store, Dispatcher: dispatcher})
	order, err := svc.PlaceOrder(context.Background(), "b-9", []LineItemInput{{ProductID: productOne, Quantity: 3}})
	require.NoError(t, err)

	payload := got.Payload.(events.OrderPlacedPayload)
	assert.Equal(t, order.ID, payload.OrderID)
	assert.Equal(t, "21", payload.Total.String())
	assert.Equal(t, domain.RoleBuyer, got.Actor.Role)
	repo.AssertExpectations(t)
}
