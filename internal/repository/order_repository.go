package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/BadhanCB/outfitex-backend/internal/domain"
)

var (
	// ErrSaleCountUpdate means the sale counters were not all incremented.
	ErrSaleCountUpdate = errors.New("sale counter update not acknowledged")
	// ErrOrderInsert means the order record could not be written.
	ErrOrderInsert = errors.New("order insert not acknowledged")
	// ErrQuantityRange means a line quantity is not positive or does not fit
	// the int4 quantity and counter increment columns.
	ErrQuantityRange = errors.New("line quantity out of range")
)

const incrementSaleCounts = `
        UPDATE products AS p
        SET sale_count = p.sale_count + v.qty, updated_at = NOW()
        FROM unnest($1::uuid[], $2::int[]) AS v(id, qty)
        WHERE p.id = v.id`

const insertOrder = `
        INSERT INTO orders (buyer_id, total)
        VALUES ($1, $2)
        RETURNING id, created_at`

// OrderRepository persists orders together with their sale counter side effect.
type OrderRepository interface {
	Place(ctx context.Context, order *domain.Order) error
}

type orderRepository struct {
	db      DBTX
	timeout time.Duration
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(db DBTX, timeout time.Duration) OrderRepository {
	return &orderRepository{db: db, timeout: timeout}
}

// Place increments every referenced product's sale counter and inserts the
// order in a single transaction. Either both land or neither does. Lines for
// the same product are merged first, so order.Items holds one line per product
// afterwards.
func (r *orderRepository) Place(ctx context.Context, order *domain.Order) error {
	if len(order.Items) == 0 {
		return fmt.Errorf("%w: no line items", ErrOrderInsert)
	}
	merged, err := mergeOrderItems(order.Items)
	if err != nil {
		return err
	}
	ids, quantities, err := saleIncrements(merged)
	if err != nil {
		return err
	}
	order.Items = merged

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrSaleCountUpdate, err)
	}
	if err := placeInTx(ctx, tx, order, ids, quantities); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrOrderInsert, err)
	}
	return nil
}

func placeInTx(ctx context.Context, tx pgx.Tx, order *domain.Order, ids []string, quantities []int32) error {
	cmd, err := tx.Exec(ctx, incrementSaleCounts, ids, quantities)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaleCountUpdate, err)
	}
	if cmd.RowsAffected() != int64(len(ids)) {
		return fmt.Errorf("%w: %d of %d products updated", ErrSaleCountUpdate, cmd.RowsAffected(), len(ids))
	}

	if err := tx.QueryRow(ctx, insertOrder, order.BuyerID, order.Total()).Scan(&order.ID, &order.CreatedAt); err != nil {
		return fmt.Errorf("%w: %w", ErrOrderInsert, err)
	}

	items := psql.Insert("order_items").Columns("order_id", "product_id", "quantity", "price")
	for _, item := range order.Items {
		items = items.Values(order.ID, item.ProductID, item.Quantity, item.Price)
	}
	query, args, err := items.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOrderInsert, err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrOrderInsert, err)
	}
	return nil
}

// mergeOrderItems folds lines for the same product into one, keeping
// first-seen order. Merged lines must agree on price.
func mergeOrderItems(items []domain.OrderItem) ([]domain.OrderItem, error) {
	index := make(map[string]int, len(items))
	merged := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 || item.Quantity > math.MaxInt32 {
			return nil, fmt.Errorf("%w: %d for product %s", ErrQuantityRange, item.Quantity, item.ProductID)
		}
		i, ok := index[item.ProductID]
		if !ok {
			index[item.ProductID] = len(merged)
			merged = append(merged, item)
			continue
		}
		if !merged[i].Price.Equal(item.Price) {
			return nil, fmt.Errorf("%w: conflicting prices for product %s", ErrOrderInsert, item.ProductID)
		}
		merged[i].Quantity += item.Quantity
		if merged[i].Quantity > math.MaxInt32 {
			return nil, fmt.Errorf("%w: %d for product %s", ErrQuantityRange, merged[i].Quantity, item.ProductID)
		}
	}
	return merged, nil
}

// saleIncrements converts merged lines into the unnest arrays of the counter
// update. It refuses quantities that do not fit int32 instead of wrapping.
func saleIncrements(items []domain.OrderItem) ([]string, []int32, error) {
	ids := make([]string, len(items))
	quantities := make([]int32, len(items))
	for i, item := range items {
		if item.Quantity <= 0 || item.Quantity > math.MaxInt32 {
			return nil, nil, fmt.Errorf("%w: %d for product %s", ErrQuantityRange, item.Quantity, item.ProductID)
		}
		ids[i] = item.ProductID
		quantities[i] = int32(item.Quantity)
	}
	return ids, quantities, nil
}
