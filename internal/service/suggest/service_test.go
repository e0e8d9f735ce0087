package suggest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"liquorhole/internal/domain"
	productrepo "liquorhole/internal/repository/product"
)

type stubRepo struct {
	mu       sync.Mutex
	products []domain.Product
	err      error
	lastF    productrepo.ListFilter
	// when set, called while the lookup is "in flight", before returning
	during func()
}

func (s *stubRepo) List(_ context.Context, f productrepo.ListFilter) ([]domain.Product, error) {
	s.mu.Lock()
	s.lastF = f
	during := s.during
	s.mu.Unlock()
	if during != nil {
		during()
	}
	return s.products, s.err
}

func TestSuggestMapsProducts(t *testing.T) {
	repo := &stubRepo{products: []domain.Product{
		{ID: "1", Name: "Ardbeg 10", Slug: "ardbeg-10"},
		{ID: "2", Name: "Ardbeg An Oa", Slug: "ardbeg-an-oa"},
	}}
	svc := New(repo)

	got, err := svc.Suggest(context.Background(), "session-1", "  ardbeg ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Slug != "ardbeg-10" {
		t.Fatalf("unexpected suggestions %+v", got)
	}
	if repo.lastF.NameQuery != "ardbeg" || repo.lastF.Limit != 6 {
		t.Fatalf("unexpected filter %+v", repo.lastF)
	}
}

func TestSuggestBlankQueryReturnsNothing(t *testing.T) {
	repo := &stubRepo{products: []domain.Product{{ID: "1"}}}
	svc := New(repo)

	got, err := svc.Suggest(context.Background(), "session-1", "   ")
	if err != nil || got != nil {
		t.Fatalf("expected empty result, got %v, %v", got, err)
	}
	if repo.lastF.NameQuery != "" {
		t.Fatal("blank query must not hit the repository")
	}
}

func TestSuggestStaleCompletionDiscarded(t *testing.T) {
	repo := &stubRepo{products: []domain.Product{{ID: "old", Name: "Old", Slug: "old"}}}
	svc := New(repo)

	// The same client issues a newer lookup while the first is in flight.
	repo.during = func() {
		repo.mu.Lock()
		repo.during = nil
		repo.mu.Unlock()
		if _, err := svc.Suggest(context.Background(), "session-1", "newer"); err != nil {
			t.Errorf("newer lookup failed: %v", err)
		}
	}

	_, err := svc.Suggest(context.Background(), "session-1", "older")
	if !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale for the superseded lookup, got %v", err)
	}
}

func TestSuggestOtherClientsDoNotInvalidate(t *testing.T) {
	repo := &stubRepo{products: []domain.Product{{ID: "1", Name: "Gin", Slug: "gin"}}}
	svc := New(repo)

	// An unrelated client completes a lookup while this one is in flight.
	repo.during = func() {
		repo.mu.Lock()
		repo.during = nil
		repo.mu.Unlock()
		if _, err := svc.Suggest(context.Background(), "session-b", "rum"); err != nil {
			t.Errorf("other client's lookup failed: %v", err)
		}
	}

	got, err := svc.Suggest(context.Background(), "session-a", "gin")
	if err != nil {
		t.Fatalf("unrelated client must not invalidate this lookup, got %v", err)
	}
	if len(got) != 1 || got[0].Slug != "gin" {
		t.Fatalf("unexpected suggestions %+v", got)
	}
}

func TestSuggestBlankQuerySupersedesInFlight(t *testing.T) {
	repo := &stubRepo{products: []domain.Product{{ID: "1", Name: "X", Slug: "x"}}}
	svc := New(repo)

	repo.during = func() {
		repo.mu.Lock()
		repo.during = nil
		repo.mu.Unlock()
		// clearing the input invalidates the in-flight lookup too
		if _, err := svc.Suggest(context.Background(), "session-1", ""); err != nil {
			t.Errorf("blank lookup failed: %v", err)
		}
	}

	_, err := svc.Suggest(context.Background(), "session-1", "x")
	if !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}
}

func TestSuggestRepoErrorPropagates(t *testing.T) {
	repo := &stubRepo{err: errors.New("db down")}
	svc := New(repo)

	if _, err := svc.Suggest(context.Background(), "session-1", "gin"); err == nil {
		t.Fatal("expected error")
	}
}
