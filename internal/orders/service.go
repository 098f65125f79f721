package orders

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-shop-services/internal/logx"
	"github.com/ariefcatur/go-shop-services/internal/products"
	"github.com/ariefcatur/go-shop-services/internal/redisx"
	"github.com/ariefcatur/go-shop-services/internal/users"
)

// ProductClient reaches the product service. GetProduct returns a nil product
// when the product does not exist.
type ProductClient interface {
	GetProduct(ctx context.Context, id int64) (*products.Product, error)
	UpdateProduct(ctx context.Context, id int64, p products.Product) (products.Product, error)
}

// UserClient reaches the user service.
type UserClient interface {
	GetUser(ctx context.Context, id int64) (users.User, error)
	AddOrderToUser(ctx context.Context, userID, orderID int64) error
}

type Service struct {
	store    Store
	products ProductClient
	users    UserClient
	cache    *redis.Client // optional
	log      *slog.Logger
}

func NewService(store Store, pc ProductClient, uc UserClient, cache *redis.Client, log *slog.Logger) *Service {
	return &Service{store: store, products: pc, users: uc, cache: cache, log: logx.OrDiscard(log)}
}

// PlaceOrder checks the user, takes stock for every item, stores the order and
// links it to the user. Each step is a separate remote call and nothing is
// compensated: if item N fails, items before it stay decremented, and if the
// final user update fails the stored order remains.
func (s *Service) PlaceOrder(ctx context.Context, in Order) (Order, error) {
	s.log.Info("placing order", "user_id", in.UserID, "items", len(in.OrderItems))

	if _, err := s.users.GetUser(ctx, in.UserID); err != nil {
		s.log.Warn("user lookup failed", "user_id", in.UserID, "err", err)
		return Order{}, &Error{Kind: KindUserNotFound, ID: in.UserID}
	}

	total := decimal.Zero
	for _, pid := range sortedProductIDs(in.OrderItems) {
		qty := in.OrderItems[pid]

		p, err := s.products.GetProduct(ctx, pid)
		if err != nil {
			return Order{}, productErr(pid, err)
		}
		if p == nil {
			return Order{}, &Error{Kind: KindProductNotFound, ID: pid}
		}
		if p.Quantity < qty {
			return Order{}, &Error{Kind: KindInsufficientQuantity, ID: pid}
		}

		p.Quantity -= qty
		if _, err := s.products.UpdateProduct(ctx, pid, *p); err != nil {
			return Order{}, productErr(pid, err)
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
	}

	order := Order{
		UserID:     in.UserID,
		OrderItems: maps.Clone(in.OrderItems),
		TotalPrice: total,
		Status:     StatusPlaced,
	}
	saved, err := s.store.Create(ctx, order)
	if err != nil {
		return Order{}, err
	}

	if err := s.users.AddOrderToUser(ctx, saved.UserID, saved.ID); err != nil {
		s.log.Error("order stored but not linked to user", "order_id", saved.ID, "user_id", saved.UserID, "err", err)
		return Order{}, &Error{Kind: KindUpstream, ID: saved.ID, Err: err}
	}

	s.log.Info("order placed", "order_id", saved.ID, "total", saved.TotalPrice.String())
	return saved, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]Order, error) {
	s.log.Info("fetching all orders")
	return s.store.List(ctx)
}

// GetOrder reads through the cache when one is configured.
func (s *Service) GetOrder(ctx context.Context, id int64) (Order, error) {
	s.log.Info("fetching order", "id", id)
	key := redisx.OrderKey(id)
	if s.cache != nil {
		o, ok, err := redisx.GetJSON[Order](ctx, s.cache, key)
		if err != nil {
			s.log.Warn("order cache read failed", "id", id, "err", err)
		} else if ok {
			return o, nil
		}
	}

	o, err := s.store.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if s.cache != nil {
		if err := redisx.SetJSON(ctx, s.cache, key, o, redisx.TTLOrder); err != nil {
			s.log.Warn("order cache write failed", "id", id, "err", err)
		}
	}
	return o, nil
}

func (s *Service) ListOrdersByUser(ctx context.Context, userID int64) ([]Order, error) {
	s.log.Info("fetching orders for user", "user_id", userID)
	return s.store.ListByUser(ctx, userID)
}

// UpdateStatus moves an order along the status graph in status.go.
func (s *Service) UpdateStatus(ctx context.Context, id int64, to Status) (Order, error) {
	s.log.Info("updating order status", "id", id, "status", to)
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if !CanTransition(o.Status, to) {
		return Order{}, &Error{Kind: KindInvalidStatus, ID: id, From: o.Status, To: to}
	}
	if err := s.store.UpdateStatus(ctx, id, to); err != nil {
		return Order{}, err
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, redisx.OrderKey(id)).Err(); err != nil {
			s.log.Warn("order cache evict failed", "id", id, "err", err)
		}
	}
	o.Status = to
	return o, nil
}

func productErr(id int64, err error) error {
	if products.IsNotFound(err) {
		return &Error{Kind: KindProductNotFound, ID: id}
	}
	return &Error{Kind: KindUpstream, ID: id, Err: err}
}

func sortedProductIDs(items map[int64]int) []int64 {
	return slices.Sorted(maps.Keys(items))
}
