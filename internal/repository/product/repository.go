package product

import (
	"context"

	"liquorhole/internal/domain"
)

// Sort orders for product listings.
const (
	SortCreatedDesc = "created_desc"
	SortNameAsc     = "name_asc"
)

// ListFilter narrows a product listing. Zero values mean "no filter".
type ListFilter struct {
	CategoryID   string
	BrandID      string
	NameQuery    string
	DiscountOnly bool
	Sort         string
	Limit        int
}

type Repository interface {
	List(ctx context.Context, f ListFilter) ([]domain.Product, error)
	ListByMenuItemIDs(ctx context.Context, ids []int64, discountOnly bool, limit int) ([]domain.Product, error)
	SearchByType(ctx context.Context, query string, discountOnly bool, limit int) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
