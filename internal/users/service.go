package users

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ariefcatur/go-shop-services/internal/logx"
)

type Service struct {
	store Store
	log   *slog.Logger
}

func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: logx.OrDiscard(log)}
}

// Add stores a new user. An empty role defaults to CUSTOMER.
func (s *Service) Add(ctx context.Context, u User) (User, error) {
	s.log.Info("adding user", "name", u.Name)
	if err := validate(&u); err != nil {
		return User{}, err
	}
	return s.store.Create(ctx, u)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	s.log.Info("fetching all users")
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	s.log.Info("fetching user", "id", id)
	return s.store.Get(ctx, id)
}

// Update overwrites name and role. The order list cannot be changed here.
func (s *Service) Update(ctx context.Context, id int64, upd User) (User, error) {
	s.log.Info("updating user", "id", id)
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	if err := validate(&upd); err != nil {
		return User{}, err
	}
	existing.Name = upd.Name
	existing.Role = upd.Role
	return s.store.Update(ctx, existing)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	s.log.Info("deleting user", "id", id)
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("user deleted", "id", id)
	return nil
}

// AddOrderToUser appends orderID to the user's order list. Repeated ids are kept.
func (s *Service) AddOrderToUser(ctx context.Context, userID, orderID int64) error {
	s.log.Info("adding order to user", "user_id", userID, "order_id", orderID)
	if _, err := s.store.Get(ctx, userID); err != nil {
		return err
	}
	return s.store.AppendOrder(ctx, userID, orderID)
}

func validate(u *User) error {
	if strings.TrimSpace(u.Name) == "" {
		return &Error{Kind: KindEmptyName}
	}
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	if !u.Role.Valid() {
		return &Error{Kind: KindInvalidRole, Role: u.Role}
	}
	return nil
}
