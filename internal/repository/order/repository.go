package order

import (
	"context"

	"liquorhole/internal/domain"
)

type Repository interface {
	// Insert persists the order and returns it with id, status and
	// creation time filled in.
	Insert(ctx context.Context, o domain.Order) (*domain.Order, error)
	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
