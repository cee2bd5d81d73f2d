package diag

import (
	"errors"
	"fmt"
)

// Kind classifies compiler failures
type Kind string

const (
	MalformedNotation Kind = "malformed_notation"
	OutOfRange        Kind = "out_of_range"
	UnknownTheoryName Kind = "unknown_theory_name"
	MissingReference  Kind = "missing_reference"
	EmptyInput        Kind = "empty_input"
	CyclicTransform   Kind = "cyclic_transform"
)

// Sentinels for errors.Is matching against any *Error of the same kind
var (
	ErrMalformedNotation = &Error{Kind: MalformedNotation}
	ErrOutOfRange        = &Error{Kind: OutOfRange}
	ErrUnknownTheoryName = &Error{Kind: UnknownTheoryName}
	ErrMissingReference  = &Error{Kind: MissingReference}
	ErrEmptyInput        = &Error{Kind: EmptyInput}
	ErrCyclicTransform   = &Error{Kind: CyclicTransform}
)

// Error is a typed compiler error. Literal is the offending input and
// Expected describes the shape the input should have had.
type Error struct {
	Kind     Kind
	Literal  string
	Expected string
	Msg      string
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Literal != "":
		return fmt.Sprintf("%s: %s %q", e.Kind, e.Msg, e.Literal)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	case e.Expected != "":
		return fmt.Sprintf("%s: %q (expected %s)", e.Kind, e.Literal, e.Expected)
	default:
		return fmt.Sprintf("%s: %q", e.Kind, e.Literal)
	}
}

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Malformed builds a MalformedNotation error
func Malformed(literal, expected string) *Error {
	return &Error{Kind: MalformedNotation, Literal: literal, Expected: expected}
}

// Range builds an OutOfRange error for a numeric field
func Range(literal, field string, value float64) *Error {
	return &Error{
		Kind:    OutOfRange,
		Literal: literal,
		Msg:     fmt.Sprintf("%s %g outside [0,1] in", field, value),
	}
}

// Unknown builds an UnknownTheoryName error that lists the accepted names
func Unknown(what, name string, valid []string) *Error {
	return &Error{
		Kind:     UnknownTheoryName,
		Literal:  name,
		Expected: fmt.Sprintf("a known %s (%v)", what, valid),
	}
}

// Missing builds a MissingReference error
func Missing(what, name string) *Error {
	return &Error{Kind: MissingReference, Literal: name, Msg: fmt.Sprintf("unknown %s", what)}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
