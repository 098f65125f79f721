package orders

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"time"
)

// MemStore is an in-memory Store for tests and STORAGE_DRIVER=memory.
type MemStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]Order
	now    func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{items: make(map[int64]Order), now: time.Now}
}

func (s *MemStore) Create(_ context.Context, o Order) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	o.ID = s.nextID
	o.CreatedAt = s.now().UTC()
	o.OrderItems = maps.Clone(o.OrderItems)
	s.items[o.ID] = o
	return cloneOrder(o), nil
}

func (s *MemStore) Get(_ context.Context, id int64) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.items[id]
	if !ok {
		return Order{}, notFound(id)
	}
	return cloneOrder(o), nil
}

func (s *MemStore) List(_ context.Context) ([]Order, error) {
	return s.filter(func(Order) bool { return true }), nil
}

func (s *MemStore) ListByUser(_ context.Context, userID int64) ([]Order, error) {
	return s.filter(func(o Order) bool { return o.UserID == userID }), nil
}

func (s *MemStore) UpdateStatus(_ context.Context, id int64, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.items[id]
	if !ok {
		return notFound(id)
	}
	o.Status = status
	s.items[id] = o
	return nil
}

// Len reports how many orders are stored.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *MemStore) filter(match func(Order) bool) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, 0, len(s.items))
	for _, o := range s.items {
		if match(o) {
			out = append(out, cloneOrder(o))
		}
	}
	slices.SortFunc(out, func(a, b Order) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func cloneOrder(o Order) Order {
	o.OrderItems = maps.Clone(o.OrderItems)
	return o
}
