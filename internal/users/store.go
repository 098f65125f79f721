package users

import "context"

// Store persists users. Missing ids yield a KindNotFound *Error.
type Store interface {
	Create(ctx context.Context, u User) (User, error)
	Get(ctx context.Context, id int64) (User, error)
	// Update writes name and role; the order list is left as stored.
	Update(ctx context.Context, u User) (User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]User, error)
	AppendOrder(ctx context.Context, userID, orderID int64) error
}
