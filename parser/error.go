package parser

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a parse failure.
type Kind uint8

const (
	// KindBacktrack is a recoverable failure: this parser does not apply at
	// the current position and an alternative may be tried.
	KindBacktrack Kind = iota

	// KindCut is an unrecoverable failure: alternatives must not be tried.
	KindCut

	// KindIncomplete means the buffered input is insufficient to decide.
	// The caller should feed more data and re-invoke the parser.
	KindIncomplete
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindBacktrack:
		return "backtrack"
	case KindCut:
		return "cut"
	case KindIncomplete:
		return "incomplete"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Sentinels matched by errors.Is against *Error values of the same kind.
var (
	// ErrBacktrack matches recoverable parse failures.
	ErrBacktrack = errors.New("parser: no match")

	// ErrCut matches unrecoverable parse failures.
	ErrCut = errors.New("parser: cut")

	// ErrIncomplete matches failures that need more input.
	ErrIncomplete = errors.New("parser: incomplete input")

	// ErrNoProgress is returned by repetition when an iteration succeeds
	// without consuming input.
	ErrNoProgress = errors.New("parser: no progress")
)

// NeededUnknown is the Needed value when the amount of missing input cannot
// be predicted.
const NeededUnknown = 0

// Error is the error value every parser in this module returns.
type Error struct {
	Kind Kind

	// Offset is the absolute stream offset the failure refers to.
	Offset int64

	// Needed is the number of additional units required, or NeededUnknown.
	// Only meaningful for KindIncomplete.
	Needed int

	// Labels are context names added by Label, innermost first.
	Labels []string

	// Cause is an optional underlying error (e.g. from TryMap).
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	switch e.Kind {
	case KindIncomplete:
		fmt.Fprintf(&b, "parser: incomplete input at offset %d", e.Offset)
		if e.Needed > 0 {
			fmt.Fprintf(&b, " (need %d more)", e.Needed)
		}
	case KindCut:
		fmt.Fprintf(&b, "parser: invalid input at offset %d", e.Offset)
	default:
		fmt.Fprintf(&b, "parser: no match at offset %d", e.Offset)
	}

	for _, l := range e.Labels {
		b.WriteString(" in ")
		b.WriteString(l)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrBacktrack:
		return e.Kind == KindBacktrack
	case ErrCut:
		return e.Kind == KindCut
	case ErrIncomplete:
		return e.Kind == KindIncomplete
	}
	return false
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Offsetter is the part of a stream error constructors need.
type Offsetter interface {
	Offset() int64
}

// Backtrack returns a recoverable failure at the current position of in.
func Backtrack(in Offsetter) *Error {
	return &Error{Kind: KindBacktrack, Offset: in.Offset()}
}

// Incomplete returns a need-more-input failure at the current position of in.
func Incomplete(in Offsetter, needed int) *Error {
	return &Error{Kind: KindIncomplete, Offset: in.Offset(), Needed: needed}
}

// KindOf returns the kind of err if it is an *Error.
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}
