package products

import (
	"context"

	"github.com/shopspring/decimal"
)

// Store persists products. Get, Update and Delete return a KindNotFound
// *Error when the id does not exist. List methods return an empty, non-nil
// slice when nothing matches and are ordered by id.
type Store interface {
	Create(ctx context.Context, p Product) (Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Product, error)
	// ListByPriceRange matches min <= price <= max.
	ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]Product, error)
	// ListByName matches names containing substr (case-sensitive).
	ListByName(ctx context.Context, substr string) ([]Product, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)
}
