package brand

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"liquorhole/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Brand, error) {
	const q = `
SELECT id::text, name, slug, COALESCE(logo_url, ''), created_at
FROM brands
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Brand
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.LogoURL, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Brand, error) {
	const q = `
SELECT id::text, name, slug, COALESCE(logo_url, ''), created_at
FROM brands
WHERE slug = $1
`
	var b domain.Brand
	err := r.pool.QueryRow(ctx, q, slug).Scan(&b.ID, &b.Name, &b.Slug, &b.LogoURL, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, b domain.Brand) (*domain.Brand, error) {
	const q = `
INSERT INTO brands (name, slug, logo_url)
VALUES ($1, $2, NULLIF($3, ''))
ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    logo_url = COALESCE(EXCLUDED.logo_url, brands.logo_url)
RETURNING id::text, created_at
`
	out := b
	if err := r.pool.QueryRow(ctx, q, b.Name, b.Slug, b.LogoURL).Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}
