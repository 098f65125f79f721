package users

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemStore is an in-memory Store for tests and STORAGE_DRIVER=memory.
type MemStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]User
}

func NewMemStore() *MemStore {
	return &MemStore{items: make(map[int64]User)}
}

func (s *MemStore) Create(_ context.Context, u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	u.ID = s.nextID
	u.OrdersList = slices.Clone(u.OrdersList)
	if u.OrdersList == nil {
		u.OrdersList = []int64{}
	}
	s.items[u.ID] = u
	return clone(u), nil
}

func (s *MemStore) Get(_ context.Context, id int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.items[id]
	if !ok {
		return User{}, NotFound(id)
	}
	return clone(u), nil
}

func (s *MemStore) Update(_ context.Context, u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.items[u.ID]
	if !ok {
		return User{}, NotFound(u.ID)
	}
	cur.Name = u.Name
	cur.Role = u.Role
	s.items[u.ID] = cur
	return clone(cur), nil
}

func (s *MemStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return NotFound(id)
	}
	delete(s.items, id)
	return nil
}

func (s *MemStore) List(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.items))
	for _, u := range s.items {
		out = append(out, clone(u))
	}
	slices.SortFunc(out, func(a, b User) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *MemStore) AppendOrder(_ context.Context, userID, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[userID]
	if !ok {
		return NotFound(userID)
	}
	u.OrdersList = append(u.OrdersList, orderID)
	s.items[userID] = u
	return nil
}

func clone(u User) User {
	u.OrdersList = slices.Clone(u.OrdersList)
	if u.OrdersList == nil {
		u.OrdersList = []int64{}
	}
	return u
}
