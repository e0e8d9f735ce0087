package cart

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/shopspring/decimal"
)

// Line is one product entry in a cart. The product id is the unique key
// within the cart and quantity is always >= 1 for a stored line.
type Line struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
	Quantity int             `json:"quantity"`
}

// Product is the payload accepted by AddItem and the Bus. Only ID is
// required; the remaining fields are copied onto the new line.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
}

// Storage persists the full cart after every mutation and rehydrates it once
// at store initialization.
type Storage interface {
	Load(ctx context.Context) ([]Line, error)
	Save(ctx context.Context, lines []Line) error
}

// Store owns the cart for one browsing session: an ordered line list,
// mirrored through a Storage adapter after every mutation. All methods are
// safe for concurrent use; each runs to completion under the store's lock.
type Store struct {
	mu          sync.Mutex
	lines       []Line
	storage     Storage
	bus         *Bus
	logger      *log.Logger
	initialized bool
}

// NewStore builds a Store around the given persistence adapter. The store
// owns its Bus and subscribes itself, so anything holding the Bus can
// contribute items without a reference to the store.
func NewStore(storage Storage, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Store{
		storage: storage,
		bus:     NewBus(),
		logger:  logger,
	}
	s.bus.Subscribe(s.AddItem)
	return s
}

// Events exposes the store's add-to-cart command channel.
func (s *Store) Events() *Bus {
	return s.bus
}

// Initialize rehydrates the cart from storage. It never fails the caller: a
// read or parse failure is logged and leaves the cart empty. Only the first
// call does anything.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return
	}
	s.initialized = true

	lines, err := s.storage.Load(ctx)
	if err != nil {
		s.logger.Printf("cart store: load failed, starting empty: %v", err)
		return
	}
	for _, l := range lines {
		if l.ID == "" || l.Quantity < 1 {
			continue
		}
		s.lines = append(s.lines, l)
	}
}

// AddItem appends the product as a new line with quantity 1, or increments
// the quantity of the existing line with the same id. A payload without an id
// is silently ignored. On a repeat add the display fields keep their
// first-written values.
func (s *Store) AddItem(ctx context.Context, p Product) {
	if p.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID == p.ID {
			s.lines[i].Quantity++
			s.persist(ctx)
			return
		}
	}
	s.lines = append(s.lines, Line{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Quantity: 1,
	})
	s.persist(ctx)
}

// RemoveItem deletes the line with the given id; no-op when absent.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// UpdateQuantity sets the quantity on the matching line. A quantity <= 0
// removes the line. No-op when no line matches.
func (s *Store) UpdateQuantity(ctx context.Context, id string, qty int) {
	if qty <= 0 {
		s.RemoveItem(ctx, id)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines[i].Quantity = qty
			s.persist(ctx)
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.persist(ctx)
}

// Total returns the sum of price * quantity over all lines. Lines with a
// negative quantity contribute nothing.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, l := range s.lines {
		if l.Quantity <= 0 {
			continue
		}
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// ItemCount returns the sum of all line quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, l := range s.lines {
		if l.Quantity > 0 {
			count += l.Quantity
		}
	}
	return count
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// persist mirrors the cart to storage. Failures are logged and swallowed:
// the in-memory cart stays authoritative for the rest of the session.
// Callers must hold s.mu.
func (s *Store) persist(ctx context.Context) {
	snapshot := make([]Line, len(s.lines))
	copy(snapshot, s.lines)
	if err := s.storage.Save(ctx, snapshot); err != nil {
		s.logger.Printf("cart store: save failed, keeping in-memory state: %v", err)
	}
}
