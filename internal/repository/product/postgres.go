package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"liquorhole/internal/domain"
)

const productColumns = `id::text, name, slug, COALESCE(type, ''), COALESCE(description, ''), price, discount_price, COALESCE(image_url, ''), category_id::text, brand_id::text, menu_item_id, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]domain.Product, error) {
	var (
		where []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.CategoryID != "" {
		where = append(where, "category_id = "+arg(f.CategoryID))
	}
	if f.BrandID != "" {
		where = append(where, "brand_id = "+arg(f.BrandID))
	}
	if f.NameQuery != "" {
		where = append(where, "name ILIKE "+arg("%"+f.NameQuery+"%"))
	}
	if f.DiscountOnly {
		where = append(where, "discount_price IS NOT NULL")
	}

	q := "SELECT " + productColumns + " FROM products"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	if f.Sort == SortNameAsc {
		q += " ORDER BY name ASC"
	} else {
		q += " ORDER BY created_at DESC"
	}
	if f.Limit > 0 {
		q += " LIMIT " + arg(f.Limit)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *postgresRepo) ListByMenuItemIDs(ctx context.Context, ids []int64, discountOnly bool, limit int) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := "SELECT " + productColumns + " FROM products WHERE menu_item_id = ANY($1)"
	args := []interface{}{ids}
	if discountOnly {
		q += " AND discount_price IS NOT NULL"
	}
	q += " ORDER BY created_at DESC"
	if limit > 0 {
		args = append(args, limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list by menu items error=%v", err)
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *postgresRepo) SearchByType(ctx context.Context, query string, discountOnly bool, limit int) ([]domain.Product, error) {
	q := "SELECT " + productColumns + " FROM products WHERE type ILIKE $1"
	args := []interface{}{"%" + query + "%"}
	if discountOnly {
		q += " AND discount_price IS NOT NULL"
	}
	q += " ORDER BY created_at DESC"
	if limit > 0 {
		args = append(args, limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: search by type q=%q error=%v", query, err)
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	q := "SELECT " + productColumns + " FROM products WHERE slug = $1"
	row := r.pool.QueryRow(ctx, q, slug)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get slug=%s error=%v", slug, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, slug, type, description, price, discount_price, image_url, category_id, brand_id, menu_item_id)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, NULLIF($7, ''), $8, $9, $10)
ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    type = EXCLUDED.type,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    discount_price = EXCLUDED.discount_price,
    image_url = EXCLUDED.image_url,
    category_id = EXCLUDED.category_id,
    brand_id = EXCLUDED.brand_id,
    menu_item_id = EXCLUDED.menu_item_id
RETURNING id::text, created_at
`
	discount := decimal.NullDecimal{}
	if p.DiscountPrice != nil {
		discount = decimal.NullDecimal{Decimal: *p.DiscountPrice, Valid: true}
	}

	out := p
	err := r.pool.QueryRow(ctx, q,
		p.Name,
		p.Slug,
		p.Type,
		p.Description,
		p.Price,
		discount,
		p.ImageURL,
		p.CategoryID,
		p.BrandID,
		p.MenuItemID,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert slug=%s error=%v", p.Slug, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted slug=%s id=%s", out.Slug, out.ID)
	return &out, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p        domain.Product
		discount decimal.NullDecimal
	)
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Type, &p.Description, &p.Price, &discount, &p.ImageURL, &p.CategoryID, &p.BrandID, &p.MenuItemID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if discount.Valid {
		d := discount.Decimal
		p.DiscountPrice = &d
	}
	return &p, nil
}
