// Package apierr defines the typed error kinds of spec §7 and the mapping
// from each kind to an HTTP status, generalizing the teacher's per-handler
// map_internal_error / map_sprite_error / map_font_error helpers into one
// table-driven type.
package apierr

import (
	"errors"
	"net/http"

	"github.com/rotisserie/eris"
)

// Kind is one of the error kinds spec §7 enumerates.
type Kind int

const (
	KindUnknownSource Kind = iota
	KindUnknownSprite
	KindUnknownFont
	KindInvalidFontRange
	KindUnmergeableTiles
	KindUndecodableEncoding
	KindMalformedQuery
	KindURIBuildFailure
	KindBackendFailure
	KindBindFailure
)

// Status returns the HTTP status this kind maps to.
func (k Kind) Status() int {
	switch k {
	case KindUnknownSource, KindUnknownSprite, KindUnknownFont:
		return http.StatusNotFound
	case KindInvalidFontRange, KindUnmergeableTiles, KindUndecodableEncoding,
		KindMalformedQuery, KindURIBuildFailure:
		return http.StatusBadRequest
	case KindBackendFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Loggable reports whether errors of this kind should be logged by default.
// Per spec §7: all 5xx are logged, 4xx are not logged by default.
func (k Kind) Loggable() bool {
	return k.Status() >= http.StatusInternalServerError
}

// Error is a typed, eris-wrapped error carrying its Kind.
type Error struct {
	Kind Kind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }
func (e *Error) Unwrap() error { return e.err }

// New wraps msg as an Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, err: eris.New(msg)}
}

// Wrap wraps cause as an Error of the given kind, preserving its stack via eris.
func Wrap(kind Kind, cause error, msg string) *Error {
	return &Error{Kind: kind, err: eris.Wrap(cause, msg)}
}

// As extracts an *Error from err, if any wraps one.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// StatusOf returns the HTTP status for err: the status of its Kind if it is
// (or wraps) an *Error, otherwise 500.
func StatusOf(err error) int {
	if e, ok := As(err); ok {
		return e.Kind.Status()
	}
	return http.StatusInternalServerError
}
