package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/BadhanCB/outfitex-backend/internal/cache"
	"github.com/BadhanCB/outfitex-backend/internal/catalog"
	"github.com/BadhanCB/outfitex-backend/internal/domain"
	"github.com/BadhanCB/outfitex-backend/internal/events"
	apperrors "github.com/BadhanCB/outfitex-backend/pkg/util"
)

func TestCatalogService_ComposeFilterAndSort(t *testing.T) {
	store := newMemStorefront(
		domain.Product{ID: "1", Slug: "a", Price: decimal.NewFromInt(30), Category: "A"},
		domain.Product{ID: "2", Slug: "b", Price: decimal.NewFromInt(10), Category: "B"},
		domain.Product{ID: "3", Slug: "c", Price: decimal.NewFromInt(50), Category: "C"},
	)
	svc := NewCatalogService(store, nil, nil)

	page, err := svc.List(context.Background(), catalog.Compose([]string{"A", "B"}, "lowToHigh"))
	require.NoError(t, err)

	require.Len(t, page.Products, 2)
	assert.Equal(t, "b", page.Products[0].Slug)
	assert.Equal(t, "a", page.Products[1].Slug)
	assert.Equal(t, int64(2), page.Total)

	page, err = svc.List(context.Background(), catalog.Compose(nil, "bogus"))
	require.NoError(t, err)
	assert.Len(t, page.Products, 3)
}

func TestCatalogService_ListFailure(t *testing.T) {
	repo := new(MockProductRepo)
	q := catalog.Compose(nil, "")
	repo.On("List", mock.Anything, q).Return(nil, errors.New("boom"))
	repo.On("Count", mock.Anything, q).Return(int64(0), nil)

	svc := NewCatalogService(repo, nil, nil)
	_, err := svc.List(context.Background(), q)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInternal))
}

func TestCatalogService_NamedListCache(t *testing.T) {
	ctx := context.Background()
	db, redisMock := redismock.NewClientMock()
	listCache := cache.NewCatalogCache(db, time.Minute)

	repo := new(MockProductRepo)
	q := catalog.TopSelling()
	products := []domain.Product{{ID: "1", Slug: "best-100000", Price: decimal.NewFromInt(12), SaleCount: 9}}
	repo.On("List", mock.Anything, q).Return(products, nil).Once()
	repo.On("Count", mock.Anything, q).Return(int64(1), nil).Once()

	raw, err := json.Marshal(&Page{Products: products, Total: 1})
	require.NoError(t, err)
	redisMock.ExpectGet(cache.Key("top-selling")).RedisNil()
	redisMock.ExpectSet(cache.Key("top-selling"), raw, time.Minute).SetVal("OK")
	redisMock.ExpectGet(cache.Key("top-selling")).SetVal(string(raw))

	svc := NewCatalogService(repo, listCache, nil)

	first, err := svc.List(ctx, q)
	require.NoError(t, err)
	second, err := svc.List(ctx, q)
	require.NoError(t, err)

	assert.Equal(t, first.Total, second.Total)
	require.Len(t, second.Products, 1)
	assert.Equal(t, "best-100000", second.Products[0].Slug)
	assert.True(t, first.Products[0].Price.Equal(second.Products[0].Price))
	repo.AssertExpectations(t)
	require.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCatalogService_InvalidatesOnEvents(t *testing.T) {
	ctx := context.Background()
	db, redisMock := redismock.NewClientMock()
	svc := NewCatalogService(new(MockProductRepo), cache.NewCatalogCache(db, time.Minute), nil)

	dispatcher := events.NewInMemoryDispatcher()
	svc.RegisterHandlers(dispatcher)

	keys := []string{cache.Key("all"), cache.Key("featured"), cache.Key("top-selling"), cache.Key("latest")}
	redisMock.ExpectDel(keys...).SetVal(4)
	redisMock.ExpectDel(keys...).SetVal(0)

	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventOrderPlaced, events.Actor{}, nil)))
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventProductFeatured, events.Actor{}, nil)))
	require.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCatalogService_InvalidationDuringReadSkipsCacheWrite(t *testing.T) {
	ctx := context.Background()
	db, redisMock := redismock.NewClientMock()
	core, logs := observer.New(zap.DebugLevel)

	repo := new(MockProductRepo)
	svc := NewCatalogService(repo, cache.NewCatalogCache(db, time.Minute), zap.New(core))
	dispatcher := events.NewInMemoryDispatcher()
	svc.RegisterHandlers(dispatcher)

	q := catalog.TopSelling()
	stale := []domain.Product{{ID: "1", Slug: "best-100000", Price: decimal.NewFromInt(12), SaleCount: 9}}
	fresh := []domain.Product{{ID: "1", Slug: "best-100000", Price: decimal.NewFromInt(12), SaleCount: 10}}
	repo.On("List", mock.Anything, q).Return(stale, nil).Once().Run(func(mock.Arguments) {
		assert.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventOrderPlaced, events.Actor{}, nil)))
	})
	repo.On("Count", mock.Anything, q).Return(int64(1), nil).Once()
	repo.On("List", mock.Anything, q).Return(fresh, nil).Once()
	repo.On("Count", mock.Anything, q).Return(int64(1), nil).Once()

	keys := []string{cache.Key("all"), cache.Key("featured"), cache.Key("top-selling"), cache.Key("latest")}
	raw, err := json.Marshal(&Page{Products: fresh, Total: 1})
	require.NoError(t, err)
	redisMock.ExpectGet(cache.Key("top-selling")).RedisNil()
	redisMock.ExpectDel(keys...).SetVal(1)
	redisMock.ExpectGet(cache.Key("top-selling")).RedisNil()
	redisMock.ExpectSet(cache.Key("top-selling"), raw, time.Minute).SetVal("OK")

	first, err := svc.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(9), first.Products[0].SaleCount)
	assert.Equal(t, 1, logs.FilterMessage("catalog changed during read, list not cached").Len())

	second, err := svc.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(10), second.Products[0].SaleCount)

	assert.Zero(t, logs.FilterMessage("catalog cache write failed").Len())
	repo.AssertExpectations(t)
	require.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCatalogService_GetBySlug(t *testing.T) {
	repo := new(MockProductRepo)
	repo.On("GetBySlug", mock.Anything, "red-dress-482913").
		Return(&domain.Product{Slug: "red-dress-482913", Description: "cotton"}, nil).Once()
	repo.On("GetBySlug", mock.Anything, "missing").Return(nil, pgx.ErrNoRows).Once()

	svc := NewCatalogService(repo, nil, nil)

	product, err := svc.GetBySlug(context.Background(), "red-dress-482913")
	require.NoError(t, err)
	assert.Equal(t, "cotton", product.Description)

	_, err = svc.GetBySlug(context.Background(), "missing")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	repo.AssertExpectations(t)
}
