package cart

import (
	"context"
	"sync"
)

// Bus is the explicit command channel for add-to-cart requests from code
// that has no reference to the store itself (quick-add widgets, offer
// sections). It replaces ad-hoc global event dispatch: the store subscribes
// on construction and a published product behaves exactly like AddItem.
type Bus struct {
	mu   sync.RWMutex
	subs []func(ctx context.Context, p Product)
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for published products.
func (b *Bus) Subscribe(fn func(ctx context.Context, p Product)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Publish delivers the product to every subscriber synchronously, in
// subscription order.
func (b *Bus) Publish(ctx context.Context, p Product) {
	b.mu.RLock()
	subs := make([]func(ctx context.Context, p Product), len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(ctx, p)
	}
}
