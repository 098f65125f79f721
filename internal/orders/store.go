package orders

import "context"

// Store persists orders. Get and UpdateStatus return a KindNotFound *Error for
// unknown ids. Lists are ordered by id and never nil.
type Store interface {
	Create(ctx context.Context, o Order) (Order, error)
	Get(ctx context.Context, id int64) (Order, error)
	List(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}
