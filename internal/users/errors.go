package users

import (
	"errors"
	"fmt"

	"github.com/ariefcatur/go-shop-services/internal/apperr"
)

type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindEmptyName
	KindInvalidRole
)

type Error struct {
	Kind ErrorKind
	ID   int64
	Role Role
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("User not found with id: %d", e.ID)
	case KindEmptyName:
		return "User name cannot be empty"
	case KindInvalidRole:
		return fmt.Sprintf("Invalid role: %s", e.Role)
	default:
		return "user error"
	}
}

func (e *Error) Class() apperr.Class {
	if e.Kind == KindNotFound {
		return apperr.NotFound
	}
	return apperr.InvalidInput
}

func NotFound(id int64) error { return &Error{Kind: KindNotFound, ID: id} }

func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNotFound
}
