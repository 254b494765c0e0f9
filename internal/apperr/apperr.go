// Package apperr defines the error kinds the service distinguishes at its
// boundaries. Pipeline code wraps freely with pkg/errors; the HTTP layer
// matches on Kind to pick a status code.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Internal is the default for anything unclassified.
	Internal Kind = iota
	// Parse marks malformed dataset input. A parse error aborts the whole
	// load; rows are never partially applied.
	Parse
	// NotFound marks a lookup of an unknown identifier.
	NotFound
)

// Error is a tagged error carrying a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Parsef returns a Parse-kind error.
func Parsef(format string, args ...interface{}) *Error {
	return &Error{Kind: Parse, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf returns a NotFound-kind error.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

// Internalf returns an Internal-kind error wrapping err.
func Internalf(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: Internal, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the kind of err, unwrapping as needed. Errors that carry no
// kind are Internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// IsNotFound reports whether err is a NotFound-kind error.
func IsNotFound(err error) bool {
	return KindOf(err) == NotFound
}
