package menuitem

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"liquorhole/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.MenuItem, error) {
	const q = `
SELECT id, name, url, parent_id
FROM menu_items
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MenuItem
	for rows.Next() {
		var m domain.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.URL, &m.ParentID); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Insert(ctx context.Context, m domain.MenuItem) (*domain.MenuItem, error) {
	const q = `
INSERT INTO menu_items (name, url, parent_id)
VALUES ($1, $2, $3)
RETURNING id
`
	out := m
	if err := r.pool.QueryRow(ctx, q, m.Name, m.URL, m.ParentID).Scan(&out.ID); err != nil {
		return nil, err
	}
	return &out, nil
}
