package workflow

import (
	"errors"
	"fmt"
)

// Kind classifies a workflow failure for the transport boundary.
type Kind int

const (
	// KindValidation marks missing or malformed input.
	KindValidation Kind = iota + 1
	// KindNotFound marks a missing entity. Entities outside the
	// actor's managed set also report not-found rather than forbidden.
	KindNotFound
	// KindForbidden marks an actor without rights over the target.
	KindForbidden
	// KindInvalidState marks a transition not valid from the current
	// status.
	KindInvalidState
)

// Error is a classified workflow failure. The message is safe to return
// to the caller.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func InvalidStatef(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the classification of err, or 0 for unexpected errors.
func KindOf(err error) Kind {
	var werr *Error
	if errors.As(err, &werr) {
		return werr.Kind
	}
	return 0
}
