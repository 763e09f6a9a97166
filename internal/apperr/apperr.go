// Package apperr classifies repository failures into the REST status contract:
// conflicts at create time, missing targets at update/delete time, and the
// 400 catch-all for everything else.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// Malformed marks payloads rejected before any statement runs.
	Malformed Kind = iota
	// Conflict marks any storage failure during an insert, unique
	// violations included.
	Conflict
	// NotFound marks an id that cannot address a row at update/delete.
	NotFound
	// Retrieval marks an insert that succeeded but whose generated id
	// could not be read back.
	Retrieval
	// Storage is the catch-all for unclassified database errors.
	Storage
)

func (k Kind) String() string {
	switch k {
	case Malformed:
		return "malformed request"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not found"
	case Retrieval:
		return "id retrieval failed"
	default:
		return "storage failure"
	}
}

// Error carries a kind alongside the underlying cause so callers can map to a
// status with StatusOf while logs keep the driver-level detail.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with the given kind. A nil err is allowed for failures that
// have no underlying cause (validation, id parsing).
func New(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

// KindOf reports the kind of err, defaulting to Storage for errors that did
// not come out of this package.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Storage
}

// StatusOf maps a classified error to the HTTP status the API reports.
func StatusOf(err error) int {
	switch KindOf(err) {
	case Conflict:
		return http.StatusConflict
	case NotFound:
		return http.StatusNotFound
	default:
		// Malformed, Retrieval and unclassified storage errors all
		// surface as 400.
		return http.StatusBadRequest
	}
}
