package repository

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/BadhanCB/outfitex-backend/internal/catalog"
	"github.com/BadhanCB/outfitex-backend/internal/domain"
)

const productsTable = "products"

// ProductRepository encapsulates product persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	List(ctx context.Context, q catalog.Query) ([]domain.Product, error)
	Count(ctx context.Context, q catalog.Query) (int64, error)
	SetFeatured(ctx context.Context, slug string, featured bool) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type productRepository struct {
	db      DBTX
	timeout time.Duration
}

// NewProductRepository instantiates repository.
func NewProductRepository(db DBTX, timeout time.Duration) ProductRepository {
	return &productRepository{db: db, timeout: timeout}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := psql.Insert(productsTable).
		Columns("slug", "name", "price", "category", "collection", "description", "image", "image_type", "seller_id", "sale_count", "featured").
		Values(
			product.Slug,
			product.Name,
			product.Price,
			product.Category,
			product.Collection,
			product.Description,
			product.Image.Data,
			product.Image.Type,
			product.SellerID,
			product.SaleCount,
			product.Featured,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx, query, args...).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := psql.Select(fieldNames(catalog.DetailProjection)...).
		From(productsTable).
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var product domain.Product
	if err := r.db.QueryRow(ctx, query, args...).Scan(productDest(&product, catalog.DetailProjection)...); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	fields := []catalog.Field{catalog.FieldID, catalog.FieldSlug, catalog.FieldName, catalog.FieldPrice}
	query, args, err := psql.Select(fieldNames(fields)...).
		From(productsTable).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryProducts(ctx, query, args, fields)
}

func (r *productRepository) List(ctx context.Context, q catalog.Query) ([]domain.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := BuildListQuery(q)
	if err != nil {
		return nil, err
	}
	return r.queryProducts(ctx, query, args, projectionOf(q))
}

func (r *productRepository) Count(ctx context.Context, q catalog.Query) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := BuildCountQuery(q)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *productRepository) SetFeatured(ctx context.Context, slug string, featured bool) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := psql.Update(productsTable).
		Set("featured", featured).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := psql.Select("1").From(productsTable).Where(sq.Eq{"slug": slug}).Limit(1).ToSql()
	if err != nil {
		return false, err
	}
	var one int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args []any, fields []catalog.Field) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(productDest(&product, fields)...); err != nil {
			return nil, err
		}
		result = append(result, product)
	}
	return result, rows.Err()
}

// BuildListQuery renders a composed catalog query as SQL.
func BuildListQuery(q catalog.Query) (string, []any, error) {
	builder := applyFilter(psql.Select(fieldNames(projectionOf(q))...).From(productsTable), q.Filter)
	if !q.Order.IsZero() {
		builder = builder.OrderBy(string(q.Order.Field) + " " + string(q.Order.Direction))
	}
	if q.Limit > 0 {
		builder = builder.Limit(q.Limit)
	}
	return builder.ToSql()
}

// BuildCountQuery renders the total-count read for the same filter.
func BuildCountQuery(q catalog.Query) (string, []any, error) {
	return applyFilter(psql.Select("COUNT(*)").From(productsTable), q.Filter).ToSql()
}

func applyFilter(builder sq.SelectBuilder, filter catalog.Filter) sq.SelectBuilder {
	if len(filter.Categories) > 0 {
		builder = builder.Where(sq.Eq{"category": filter.Categories})
	}
	if filter.Collection != "" {
		builder = builder.Where(sq.Eq{"collection": filter.Collection})
	}
	if filter.Featured {
		builder = builder.Where(sq.Eq{"featured": true})
	}
	return builder
}

func projectionOf(q catalog.Query) []catalog.Field {
	if len(q.Projection) == 0 {
		return catalog.ListProjection
	}
	return q.Projection
}

func fieldNames(fields []catalog.Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return names
}

func productDest(p *domain.Product, fields []catalog.Field) []any {
	dest := make([]any, len(fields))
	for i, f := range fields {
		dest[i] = productField(p, f)
	}
	return dest
}

func productField(p *domain.Product, f catalog.Field) any {
	switch f {
	case catalog.FieldID:
		return &p.ID
	case catalog.FieldSlug:
		return &p.Slug
	case catalog.FieldName:
		return &p.Name
	case catalog.FieldPrice:
		return &p.Price
	case catalog.FieldCategory:
		return &p.Category
	case catalog.FieldCollection:
		return &p.Collection
	case catalog.FieldDescription:
		return &p.Description
	case catalog.FieldImage:
		return &p.Image.Data
	case catalog.FieldImageType:
		return &p.Image.Type
	case catalog.FieldSellerID:
		return &p.SellerID
	case catalog.FieldSaleCount:
		return &p.SaleCount
	case catalog.FieldFeatured:
		return &p.Featured
	case catalog.FieldCreatedAt:
		return &p.CreatedAt
	case catalog.FieldUpdatedAt:
		return &p.UpdatedAt
	}
	panic("product field not mapped: " + string(f))
}
