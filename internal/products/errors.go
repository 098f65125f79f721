package products

import (
	"errors"
	"fmt"

	"github.com/ariefcatur/go-shop-services/internal/apperr"
)

type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindNegativeQuantity
	KindNegativePrice
)

type Error struct {
	Kind ErrorKind
	ID   int64
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("Product not found with id: %d", e.ID)
	case KindNegativeQuantity:
		return "Quantity cannot be negative"
	case KindNegativePrice:
		return "Price cannot be negative"
	default:
		return "product error"
	}
}

func (e *Error) Class() apperr.Class {
	if e.Kind == KindNotFound {
		return apperr.NotFound
	}
	return apperr.InvalidInput
}

func notFound(id int64) error { return &Error{Kind: KindNotFound, ID: id} }

func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNotFound
}
