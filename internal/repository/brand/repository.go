package brand

import (
	"context"

	"liquorhole/internal/domain"
)

type Repository interface {
	ListAll(ctx context.Context) ([]domain.Brand, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Brand, error)
	Upsert(ctx context.Context, b domain.Brand) (*domain.Brand, error)
}
