package menuitem

import (
	"context"

	"liquorhole/internal/domain"
)

type Repository interface {
	// ListAll returns every navigation row, flat, ordered by id.
	ListAll(ctx context.Context) ([]domain.MenuItem, error)
	Insert(ctx context.Context, m domain.MenuItem) (*domain.MenuItem, error)
}
