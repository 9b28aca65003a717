// Package apperr carries the error taxonomy shared by the services and the
// HTTP layer: not-found, validation, conflict and reference failures, each
// with a stable human-readable message.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindNotFound means a referenced id does not exist in its collection.
	KindNotFound Kind = iota + 1
	// KindValidation means malformed or out-of-bound input, detected before
	// any mutation.
	KindValidation
	// KindConflict means the operation would violate a cross-entity
	// invariant (duplicate email, sub-task ceiling, expired edit window).
	KindConflict
	// KindReference means a foreign id does not resolve to a valid, active
	// entity (assignee, author).
	KindReference
)

// Error pairs a taxonomy kind with a caller-facing message. Messages are part
// of the contract; callers key off the exact text.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

func Reference(format string, args ...any) *Error {
	return New(KindReference, format, args...)
}

// KindOf extracts the taxonomy kind from err, or zero for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
