package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/BadhanCB/outfitex-backend/internal/domain"
)

// PrincipalRepository defines persistence access for one principal store.
type PrincipalRepository interface {
	Role() domain.Role
	Create(ctx context.Context, principal *domain.Principal) error
	GetByID(ctx context.Context, id string) (*domain.Principal, error)
	GetByEmail(ctx context.Context, email string) (*domain.Principal, error)
	UpdatePhoto(ctx context.Context, id string, photo domain.Image) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type principalTable struct {
	name  string
	extra []string
}

var principalTables = map[domain.Role]principalTable{
	domain.RoleBuyer:  {name: "buyers", extra: []string{"shipping_address"}},
	domain.RoleSeller: {name: "sellers", extra: []string{"address", "corporate_address", "nid", "slug"}},
	domain.RoleAdmin:  {name: "admins"},
}

var principalBaseColumns = []string{
	"id", "name", "username", "email", "phone", "password_hash", "image", "image_type", "created_at", "updated_at",
}

type principalRepository struct {
	db      DBTX
	role    domain.Role
	table   principalTable
	timeout time.Duration
}

// NewPrincipalRepository returns a Postgres-backed store for the given role.
func NewPrincipalRepository(db DBTX, role domain.Role, timeout time.Duration) (PrincipalRepository, error) {
	table, ok := principalTables[role]
	if !ok {
		return nil, fmt.Errorf("unknown principal role %q", role)
	}
	return &principalRepository{db: db, role: role, table: table, timeout: timeout}, nil
}

func (r *principalRepository) Role() domain.Role {
	return r.role
}

func (r *principalRepository) columns() []string {
	cols := make([]string, 0, len(principalBaseColumns)+len(r.table.extra))
	cols = append(cols, principalBaseColumns...)
	return append(cols, r.table.extra...)
}

func (r *principalRepository) Create(ctx context.Context, principal *domain.Principal) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cols := []string{"name", "username", "email", "phone", "password_hash"}
	vals := []any{principal.Name, principal.Username, principal.Email, principal.Phone, principal.PasswordHash}
	for _, col := range r.table.extra {
		cols = append(cols, col)
		vals = append(vals, *principalField(principal, col).(*string))
	}

	query, args, err := psql.Insert(r.table.name).
		Columns(cols...).
		Values(vals...).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&principal.ID, &principal.CreatedAt, &principal.UpdatedAt); err != nil {
		return err
	}
	principal.Role = r.role
	return nil
}

func (r *principalRepository) GetByID(ctx context.Context, id string) (*domain.Principal, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *principalRepository) GetByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	return r.getOne(ctx, sq.Eq{"email": email})
}

func (r *principalRepository) getOne(ctx context.Context, where sq.Eq) (*domain.Principal, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cols := r.columns()
	query, args, err := psql.Select(cols...).From(r.table.name).Where(where).ToSql()
	if err != nil {
		return nil, err
	}

	principal := domain.Principal{Role: r.role}
	dest := make([]any, len(cols))
	for i, col := range cols {
		dest[i] = principalField(&principal, col)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(dest...); err != nil {
		return nil, err
	}
	return &principal, nil
}

func (r *principalRepository) UpdatePhoto(ctx context.Context, id string, photo domain.Image) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := psql.Update(r.table.name).
		Set("image", photo.Data).
		Set("image_type", photo.Type).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
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

func (r *principalRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	if !r.hasColumn("slug") {
		return false, nil
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := psql.Select("1").From(r.table.name).Where(sq.Eq{"slug": slug}).Limit(1).ToSql()
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

func (r *principalRepository) hasColumn(col string) bool {
	for _, c := range r.table.extra {
		if c == col {
			return true
		}
	}
	return false
}

func principalField(p *domain.Principal, col string) any {
	switch col {
	case "id":
		return &p.ID
	case "name":
		return &p.Name
	case "username":
		return &p.Username
	case "email":
		return &p.Email
	case "phone":
		return &p.Phone
	case "password_hash":
		return &p.PasswordHash
	case "image":
		return &p.Photo.Data
	case "image_type":
		return &p.Photo.Type
	case "created_at":
		return &p.CreatedAt
	case "updated_at":
		return &p.UpdatedAt
	case "shipping_address":
		return &p.ShippingAddress
	case "address":
		return &p.Address
	case "corporate_address":
		return &p.CorporateAddress
	case "nid":
		return &p.NID
	case "slug":
		return &p.Slug
	}
	panic("principal column not mapped: " + col)
}
