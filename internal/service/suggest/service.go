package suggest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"liquorhole/internal/domain"
	productrepo "liquorhole/internal/repository/product"
)

// ErrStale marks a completion that lost the race against a newer lookup
// from the same client. Callers drop the result; it is not a failure to
// report.
var ErrStale = errors.New("stale suggestion result")

const suggestionLimit = 6

// maxTrackedClients bounds the token map. Tokens only matter while a
// lookup is in flight, so resetting the map at the cap costs at most the
// lookups in flight at that instant.
const maxTrackedClients = 4096

type productRepo interface {
	List(ctx context.Context, f productrepo.ListFilter) ([]domain.Product, error)
}

// Suggestion is one search-as-you-type hit.
type Suggestion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Service serves name-substring product suggestions. Each lookup takes a
// token that increases monotonically per client; a completion whose token
// is no longer that client's latest is discarded, so an out-of-order
// response can never overwrite a newer one. Tokens are scoped per client:
// lookups from unrelated clients never invalidate each other.
type Service struct {
	repo productRepo

	mu     sync.Mutex
	latest map[string]uint64
}

func New(repo productRepo) *Service {
	return &Service{repo: repo, latest: make(map[string]uint64)}
}

// Suggest looks up products whose name contains query on behalf of the
// given client. A blank query advances the client's token and returns
// nothing, clearing any lookup of theirs still in flight.
func (s *Service) Suggest(ctx context.Context, clientID, query string) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	token := s.nextToken(clientID)
	if query == "" {
		return nil, nil
	}

	products, err := s.repo.List(ctx, productrepo.ListFilter{
		NameQuery: query,
		Limit:     suggestionLimit,
		Sort:      productrepo.SortNameAsc,
	})
	if err != nil {
		return nil, err
	}
	if token != s.currentToken(clientID) {
		return nil, ErrStale
	}

	out := make([]Suggestion, 0, len(products))
	for _, p := range products {
		out = append(out, Suggestion{ID: p.ID, Name: p.Name, Slug: p.Slug})
	}
	return out, nil
}

func (s *Service) nextToken(clientID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.latest) >= maxTrackedClients {
		s.latest = make(map[string]uint64)
	}
	s.latest[clientID]++
	return s.latest[clientID]
}

func (s *Service) currentToken(clientID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest[clientID]
}
