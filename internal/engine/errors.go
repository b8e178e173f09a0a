package engine

import (
	"errors"
	"fmt"
)

// Kind classifies a request failure so the presentation layer can render a
// specific message. All kinds are detected before any computation starts.
type Kind string

const (
	// KindInvalidParameter marks a missing, non-numeric or out-of-range
	// scalar input.
	KindInvalidParameter Kind = "invalid_parameter"
	// KindMalformedMatrix marks a PCA input that is ragged, too small or
	// contains non-finite entries.
	KindMalformedMatrix Kind = "malformed_matrix"
)

// Error is a request validation failure with the offending field attached.
type Error struct {
	Kind  Kind
	Field string
	Msg   string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Msg)
}

func invalidParam(field, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidParameter, Field: field, Msg: fmt.Sprintf(format, args...)}
}

func malformedMatrix(format string, args ...any) *Error {
	return &Error{Kind: KindMalformedMatrix, Field: "data_matrix", Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the failure kind, or "" for errors outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
