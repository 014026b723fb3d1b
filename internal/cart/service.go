package cart

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Listener receives a snapshot of the cart after every change.
type Listener func(items []Item)

// Service is the single mutation surface for the cart. Every change is
// persisted before it becomes visible; a failed write leaves the cart as it was.
type Service struct {
	mu     sync.Mutex
	repo   Repository
	items  []Item
	loaded bool
	log    *slog.Logger

	listeners map[int]Listener
	nextID    int
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log, listeners: make(map[int]Listener)}
}

// Subscribe registers fn for change notifications and returns a function that
// removes it.
func (s *Service) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Items returns a copy of the cart in display order.
func (s *Service) Items(ctx context.Context) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return clone(s.items), nil
}

func (s *Service) Total(ctx context.Context) (float64, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	return Total(items), nil
}

// Add merges item into the cart: an existing line gains item.Quantity units,
// otherwise the item is appended.
func (s *Service) Add(ctx context.Context, item Item) ([]Item, error) {
	item.ID = strings.TrimSpace(item.ID)
	switch {
	case item.ID == "":
		return nil, ErrInvalidItem
	case item.Quantity < 1:
		return nil, ErrInvalidQuantity
	case item.Price < 0:
		return nil, ErrInvalidPrice
	}

	return s.mutate(ctx, func(items []Item) ([]Item, error) {
		if i := indexOf(items, item.ID); i >= 0 {
			items[i].Quantity += item.Quantity
			return items, nil
		}
		return append(items, item), nil
	})
}

// Remove deletes the whole line for id. Unknown ids are ignored.
func (s *Service) Remove(ctx context.Context, id string) ([]Item, error) {
	return s.mutate(ctx, func(items []Item) ([]Item, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, nil
		}
		return append(items[:i], items[i+1:]...), nil
	})
}

// SetQuantity replaces the quantity of an existing line in one step; a
// quantity of zero or less removes the line.
func (s *Service) SetQuantity(ctx context.Context, id string, quantity int) ([]Item, error) {
	return s.mutate(ctx, func(items []Item) ([]Item, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, ErrItemNotFound
		}
		if quantity <= 0 {
			return append(items[:i], items[i+1:]...), nil
		}
		items[i].Quantity = quantity
		return items, nil
	})
}

func (s *Service) Increment(ctx context.Context, id string) ([]Item, error) {
	return s.mutate(ctx, func(items []Item) ([]Item, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, ErrItemNotFound
		}
		items[i].Quantity++
		return items, nil
	})
}

// Decrement takes one unit off a line, removing it at the last unit.
func (s *Service) Decrement(ctx context.Context, id string) ([]Item, error) {
	return s.mutate(ctx, func(items []Item) ([]Item, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, ErrItemNotFound
		}
		if items[i].Quantity <= 1 {
			return append(items[:i], items[i+1:]...), nil
		}
		items[i].Quantity--
		return items, nil
	})
}

// Clear empties the cart and persists the empty state.
func (s *Service) Clear(ctx context.Context) error {
	_, err := s.mutate(ctx, func(items []Item) ([]Item, error) {
		return []Item{}, nil
	})
	return err
}

// mutate applies fn to a copy of the cart. fn returns nil items (and nil
// error) when nothing changed.
func (s *Service) mutate(ctx context.Context, fn func([]Item) ([]Item, error)) ([]Item, error) {
	s.mu.Lock()
	if err := s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	next, err := fn(clone(s.items))
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if next == nil {
		snap := clone(s.items)
		s.mu.Unlock()
		return snap, nil
	}

	if err := s.repo.Save(ctx, next); err != nil {
		s.mu.Unlock()
		s.log.Error("cart write failed", "error", err)
		return nil, err
	}
	s.items = next
	snap := clone(next)
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(clone(snap))
	}
	return snap, nil
}

// ensureLoaded must be called with mu held.
func (s *Service) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	items, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.items = normalize(items)
	s.loaded = true
	s.log.Debug("cart restored", "lines", len(s.items))
	return nil
}
