// Package errs defines the error taxonomy shared across the engine's
// components so callers can branch on kind rather than message text.
package errs

import "errors"

// Kind classifies an engine error by what failed, not by which library
// raised it.
type Kind string

const (
	KindConfig     Kind = "config"
	KindDerivation Kind = "derivation"
	KindPoolData   Kind = "pool_data_missing"
	KindBuild      Kind = "build"
	KindSubmit     Kind = "submit"
	KindChain      Kind = "chain_rejection"
)

// Error wraps an underlying cause with a Kind and the context fields a
// structured log line needs (mint, side, venue).
type Error struct {
	Kind  Kind
	Mint  string
	Side  string
	Venue string
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, mint, side, venue string, err error) *Error {
	return &Error{Kind: kind, Mint: mint, Side: side, Venue: venue, Err: err}
}

func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
