package services

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation so callers can branch without matching text.
type Kind string

const (
	KindInvalid             Kind = "invalid"
	KindNotFound            Kind = "not_found"
	KindExpired             Kind = "expired"
	KindExhausted           Kind = "exhausted"
	KindConflict            Kind = "conflict"
	KindNoData              Kind = "no_data"
	KindGenerationExhausted Kind = "generation_exhausted"
	KindStoreFailure        Kind = "store_failure"
)

// Error is returned by every service operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so errors.Is(err, ErrExpired) works
// whatever the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalid             = &Error{Kind: KindInvalid, Message: "invalid request"}
	ErrNotFound            = &Error{Kind: KindNotFound, Message: "code not available"}
	ErrExpired             = &Error{Kind: KindExpired, Message: "too late"}
	ErrExhausted           = &Error{Kind: KindExhausted, Message: "no points left to distribute"}
	ErrConflict            = &Error{Kind: KindConflict, Message: "already existing pseudo"}
	ErrNoData              = &Error{Kind: KindNoData, Message: "no data"}
	ErrGenerationExhausted = &Error{Kind: KindGenerationExhausted, Message: "no free code found"}
	ErrStoreFailure        = &Error{Kind: KindStoreFailure, Message: "store failure"}
)

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func invalid(msg string) *Error { return newError(KindInvalid, msg, nil) }

func storeFailure(op string, err error) *Error {
	return newError(KindStoreFailure, op, err)
}

// KindOf returns the Kind carried by err, or KindStoreFailure for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStoreFailure
}
