package orders

import (
	"errors"
	"fmt"

	"github.com/ariefcatur/go-shop-services/internal/apperr"
)

type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindUserNotFound
	KindProductNotFound
	KindInsufficientQuantity
	KindInvalidStatus
	KindUpstream
)

// Error is returned by the order service. ID is the order, user or product id
// depending on Kind.
type Error struct {
	Kind     ErrorKind
	ID       int64
	From, To Status // KindInvalidStatus
	Err      error  // KindUpstream
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("Order not found with id: %d", e.ID)
	case KindUserNotFound:
		return fmt.Sprintf("User not found with id: %d", e.ID)
	case KindProductNotFound:
		return fmt.Sprintf("Product not found with id: %d", e.ID)
	case KindInsufficientQuantity:
		return fmt.Sprintf("Insufficient quantity for product: %d", e.ID)
	case KindInvalidStatus:
		return fmt.Sprintf("Invalid status transition from %s to %s", e.From, e.To)
	case KindUpstream:
		return fmt.Sprintf("Order placement failed: %v", e.Err)
	default:
		return "order error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Class() apperr.Class {
	switch e.Kind {
	case KindNotFound, KindUserNotFound, KindProductNotFound:
		return apperr.NotFound
	case KindInsufficientQuantity, KindInvalidStatus:
		return apperr.InvalidInput
	case KindUpstream:
		return apperr.UpstreamUnavailable
	default:
		return apperr.Internal
	}
}

func notFound(id int64) error { return &Error{Kind: KindNotFound, ID: id} }

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
