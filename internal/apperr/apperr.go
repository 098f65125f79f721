// Package apperr classifies errors so the HTTP layer can map them to status codes.
package apperr

import (
	"errors"
	"fmt"
)

type Class int

const (
	Internal Class = iota
	NotFound
	InvalidInput
	UpstreamUnavailable
)

func (c Class) String() string {
	switch c {
	case NotFound:
		return "not_found"
	case InvalidInput:
		return "invalid_input"
	case UpstreamUnavailable:
		return "upstream_unavailable"
	default:
		return "internal"
	}
}

type classifier interface {
	Class() Class
}

// ClassOf returns the class of the first error in err's chain that carries one.
// Errors without a class are Internal.
func ClassOf(err error) Class {
	var c classifier
	if errors.As(err, &c) {
		return c.Class()
	}
	return Internal
}

// InputError is a request that failed validation before reaching a service.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }
func (e *InputError) Class() Class  { return InvalidInput }

func Invalid(format string, args ...any) error {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// UpstreamError wraps a failed call to another service.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
func (e *UpstreamError) Class() Class  { return UpstreamUnavailable }

func Upstream(service string, err error) error {
	return &UpstreamError{Service: service, Err: err}
}
