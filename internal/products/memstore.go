package products

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// MemStore is an in-memory Store for tests and STORAGE_DRIVER=memory.
type MemStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]Product
}

func NewMemStore() *MemStore {
	return &MemStore{items: make(map[int64]Product)}
}

func (s *MemStore) Create(_ context.Context, p Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p.ID = s.nextID
	s.items[p.ID] = p
	return p, nil
}

func (s *MemStore) Get(_ context.Context, id int64) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.items[id]
	if !ok {
		return Product{}, notFound(id)
	}
	return p, nil
}

func (s *MemStore) Update(_ context.Context, p Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[p.ID]; !ok {
		return Product{}, notFound(p.ID)
	}
	s.items[p.ID] = p
	return p, nil
}

func (s *MemStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return notFound(id)
	}
	delete(s.items, id)
	return nil
}

func (s *MemStore) List(_ context.Context) ([]Product, error) {
	return s.filter(func(Product) bool { return true }), nil
}

func (s *MemStore) ListByPriceRange(_ context.Context, min, max decimal.Decimal) ([]Product, error) {
	return s.filter(func(p Product) bool {
		return p.Price.GreaterThanOrEqual(min) && p.Price.LessThanOrEqual(max)
	}), nil
}

func (s *MemStore) ListByName(_ context.Context, substr string) ([]Product, error) {
	return s.filter(func(p Product) bool { return strings.Contains(p.Name, substr) }), nil
}

func (s *MemStore) ListByCategory(_ context.Context, category string) ([]Product, error) {
	return s.filter(func(p Product) bool { return p.Category == category }), nil
}

func (s *MemStore) filter(match func(Product) bool) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0, len(s.items))
	for _, p := range s.items {
		if match(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b Product) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
