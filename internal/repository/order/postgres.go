package order

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"liquorhole/internal/domain"
)

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

func (r *postgresRepo) Insert(ctx context.Context, o domain.Order) (*domain.Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("serialize order items: %w", err)
	}

	const q = `
INSERT INTO orders (customer_name, phone_number, email, customer_address, notes, items, total_price, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
RETURNING id::text, status, created_at
`
	out := o
	err = r.pool.QueryRow(ctx, q,
		o.CustomerName,
		o.PhoneNumber,
		o.Email,
		o.Address,
		o.Notes,
		items,
		o.TotalPrice,
	).Scan(&out.ID, &out.Status, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("order repo: insert customer=%q error=%v", o.CustomerName, err)
		return nil, err
	}
	r.logger.Printf("order repo: inserted id=%s total=%s", out.ID, out.TotalPrice)
	return &out, nil
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT id::text, customer_name, phone_number, email, customer_address, COALESCE(notes, ''), items, total_price, status, created_at
FROM orders
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var (
			o        domain.Order
			rawItems []byte
		)
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.PhoneNumber, &o.Email, &o.Address, &o.Notes, &rawItems, &o.TotalPrice, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		if len(rawItems) > 0 {
			if err := json.Unmarshal(rawItems, &o.Items); err != nil {
				r.logger.Printf("order repo: bad items payload id=%s error=%v", o.ID, err)
				o.Items = nil
			}
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id, status string) error {
	const q = `UPDATE orders SET status = $2 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, id, status)
	if err != nil {
		r.logger.Printf("order repo: update status id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("order repo: status id=%s -> %s", id, status)
	return nil
}
