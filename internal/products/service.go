package products

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-shop-services/internal/logx"
	"github.com/ariefcatur/go-shop-services/internal/redisx"
)

type Service struct {
	store Store
	cache *redis.Client // optional
	log   *slog.Logger
}

func NewService(store Store, cache *redis.Client, log *slog.Logger) *Service {
	return &Service{store: store, cache: cache, log: logx.OrDiscard(log)}
}

func (s *Service) Add(ctx context.Context, p Product) (Product, error) {
	s.log.Info("adding product", "name", p.Name)
	if err := validate(p); err != nil {
		return Product{}, err
	}
	return s.store.Create(ctx, p)
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	s.log.Info("fetching all products")
	return s.store.List(ctx)
}

// Get reads through the cache when one is configured. Cache errors are logged
// and fall back to the store.
func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	s.log.Info("fetching product", "id", id)
	key := redisx.ProductKey(id)
	if s.cache != nil {
		p, ok, err := redisx.GetJSON[Product](ctx, s.cache, key)
		if err != nil {
			s.log.Warn("product cache read failed", "id", id, "err", err)
		} else if ok {
			return p, nil
		}
	}

	p, err := s.store.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if s.cache != nil {
		if err := redisx.SetJSON(ctx, s.cache, key, p, redisx.TTLProduct); err != nil {
			s.log.Warn("product cache write failed", "id", id, "err", err)
		}
	}
	return p, nil
}

// Update overwrites every mutable field of product id with the values in upd.
func (s *Service) Update(ctx context.Context, id int64, upd Product) (Product, error) {
	s.log.Info("updating product", "id", id)
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if err := validate(upd); err != nil {
		return Product{}, err
	}
	existing.Name = upd.Name
	existing.Description = upd.Description
	existing.Category = upd.Category
	existing.Price = upd.Price
	existing.Quantity = upd.Quantity

	saved, err := s.store.Update(ctx, existing)
	if err != nil {
		return Product{}, err
	}
	s.evict(ctx, id)
	return saved, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	s.log.Info("deleting product", "id", id)
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, id)
	s.log.Info("product deleted", "id", id)
	return nil
}

func (s *Service) ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]Product, error) {
	s.log.Info("fetching products by price range", "min", min.String(), "max", max.String())
	return s.store.ListByPriceRange(ctx, min, max)
}

func (s *Service) ListByName(ctx context.Context, name string) ([]Product, error) {
	s.log.Info("fetching products by name", "name", name)
	return s.store.ListByName(ctx, name)
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	s.log.Info("fetching products by category", "category", category)
	return s.store.ListByCategory(ctx, category)
}

func (s *Service) evict(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, redisx.ProductKey(id)).Err(); err != nil {
		s.log.Warn("product cache evict failed", "id", id, "err", err)
	}
}

func validate(p Product) error {
	if p.Quantity < 0 {
		return &Error{Kind: KindNegativeQuantity}
	}
	if p.Price.IsNegative() {
		return &Error{Kind: KindNegativePrice}
	}
	return nil
}
