package collection

import (
	"context"
	"io"
	"log"

	"liquorhole/internal/domain"
	"liquorhole/internal/menu"
)

const (
	menuProductLimit = 500
	typeSearchLimit  = 200
)

type menuRepo interface {
	ListAll(ctx context.Context) ([]domain.MenuItem, error)
}

type productRepo interface {
	ListByMenuItemIDs(ctx context.Context, ids []int64, discountOnly bool, limit int) ([]domain.Product, error)
	SearchByType(ctx context.Context, query string, discountOnly bool, limit int) ([]domain.Product, error)
}

// Service resolves a collection slug to its product set. Resolution runs
// three tiers in order: menu node by URL, menu node by name, then a free-text
// search on the product type field. The fallback chain is the resilience
// policy for incomplete menu configuration; an unresolved slug is never an
// error.
type Service struct {
	menuRepo    menuRepo
	productRepo productRepo
	logger      *log.Logger
}

func New(menuRepo menuRepo, productRepo productRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{menuRepo: menuRepo, productRepo: productRepo, logger: logger}
}

// Result is a resolved collection page.
type Result struct {
	Name     string
	Products []domain.Product
}

// Menu returns the navigation forest, rebuilt from the flat rows.
func (s *Service) Menu(ctx context.Context) ([]*domain.MenuNode, error) {
	items, err := s.menuRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return menu.Build(items), nil
}

// Resolve maps a collection slug to a display name and product list,
// optionally restricted to discounted products. A failing menu fetch degrades
// straight to the type search rather than surfacing an error.
func (s *Service) Resolve(ctx context.Context, slug string, discountOnly bool) (*Result, error) {
	items, err := s.menuRepo.ListAll(ctx)
	if err != nil {
		s.logger.Printf("collection: menu fetch failed, falling back to type search: %v", err)
		return s.resolveByType(ctx, slug, discountOnly)
	}

	roots := menu.Build(items)
	node := menu.ResolveNodeByURL(roots, "/collections/"+slug)
	if node == nil {
		node = menu.ResolveNodeByName(roots, slug)
	}
	if node == nil {
		return s.resolveByType(ctx, slug, discountOnly)
	}

	ids := menu.CollectDescendantIDs(node)
	products, err := s.productRepo.ListByMenuItemIDs(ctx, ids, discountOnly, menuProductLimit)
	if err != nil {
		return nil, err
	}

	name := node.Name
	if name == "" {
		name = slug
	}
	return &Result{Name: name, Products: products}, nil
}

func (s *Service) resolveByType(ctx context.Context, slug string, discountOnly bool) (*Result, error) {
	products, err := s.productRepo.SearchByType(ctx, slug, discountOnly, typeSearchLimit)
	if err != nil {
		return nil, err
	}
	return &Result{Name: slug, Products: products}, nil
}
