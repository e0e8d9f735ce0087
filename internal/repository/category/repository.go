package category

import (
	"context"

	"liquorhole/internal/domain"
)

type Repository interface {
	ListAll(ctx context.Context) ([]domain.Category, error)
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}
