package rxparse

import (
	"fmt"

	"github.com/coregx/rxparse/engine"
	"github.com/coregx/rxparse/parser"
	"github.com/coregx/rxparse/stream"
)

// Outcome classifies one anchored match attempt.
type Outcome uint8

const (
	// NoMatch means the pattern definitely does not match at offset 0.
	NoMatch Outcome = iota

	// Match means the pattern matches at offset 0 and the match is final.
	Match

	// Incomplete means the buffered data cannot decide yet: the attempt
	// touches the end of a buffer that may still grow.
	Incomplete
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case NoMatch:
		return "NoMatch"
	case Match:
		return "Match"
	case Incomplete:
		return "Incomplete"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// Matcher is a compiled pattern bound to a haystack kind.
//
// A Matcher is immutable and safe to use concurrently from multiple
// goroutines; every attempt allocates its own capture storage.
type Matcher[S Haystack] struct {
	eng    engine.Engine[S]
	expr   string
	groups int
	names  []string
}

func newMatcher[S Haystack](e engine.Engine[S], expr string) *Matcher[S] {
	m := &Matcher[S]{
		eng:    e,
		expr:   expr,
		groups: e.NewLocations().Len(),
	}
	if named, ok := e.(engine.Named); ok {
		m.names = named.SubexpNames()
	}
	return m
}

// String returns the source expression.
func (m *Matcher[S]) String() string {
	return m.expr
}

// NumGroups returns the number of capture groups including group 0.
func (m *Matcher[S]) NumGroups() int {
	return m.groups
}

// SubexpNames returns group names, with names[0] always empty. It returns
// nil when the engine does not know group names.
// The slice returned is shared and must not be modified.
func (m *Matcher[S]) SubexpNames() []string {
	return m.names
}

// Engine returns the underlying engine.
func (m *Matcher[S]) Engine() engine.Engine[S] {
	return m.eng
}

// Classify runs one anchored attempt against haystack without touching any
// stream and returns the outcome and, for Match, the match length.
//
// incomplete reports whether haystack may still grow. Classify is a pure
// function of the pattern, haystack and incomplete.
func (m *Matcher[S]) Classify(haystack S, incomplete bool) (Outcome, int) {
	outcome, end, _ := m.attempt(haystack, incomplete)
	return outcome, end
}

// attempt is the anchored match algorithm.
//
// The engine searches the whole haystack and returns its first match. Only
// a match starting at offset 0 counts. A match (or absence of one) is final
// unless the haystack may still grow and the attempt ran into its end: a
// match ending exactly at len(haystack) could extend, and a missing match
// could still appear. An empty incomplete haystack is therefore always
// Incomplete, even for patterns accepting the empty string.
func (m *Matcher[S]) attempt(haystack S, incomplete bool) (Outcome, int, engine.Locations) {
	locs := m.eng.NewLocations()

	start, end, ok := m.eng.CapturesRead(locs, haystack)
	if !ok || start != 0 {
		if incomplete {
			return Incomplete, 0, nil
		}
		return NoMatch, 0, nil
	}

	if incomplete && end == len(haystack) {
		return Incomplete, 0, nil
	}
	return Match, end, locs
}

// captures runs one attempt against in and, on Match, splits the matched
// span off the stream.
func (m *Matcher[S]) captures(in stream.Stream[S]) (*Captures[S], error) {
	incomplete := in.PartialSupported() && in.IsPartial()

	outcome, end, locs := m.attempt(in.PeekFinish(), incomplete)
	switch outcome {
	case Incomplete:
		return nil, parser.Incomplete(in, parser.NeededUnknown)
	case NoMatch:
		return nil, parser.Backtrack(in)
	}

	return &Captures[S]{
		slice: in.NextSlice(end),
		locs:  locs,
		names: m.names,
	}, nil
}

// Regex returns a parser yielding the matched span, sharing m.
func (m *Matcher[S]) Regex() *RegexParser[S] {
	return &RegexParser[S]{m: m}
}

// Capture returns a parser yielding Captures, sharing m.
func (m *Matcher[S]) Capture() *CaptureParser[S] {
	return &CaptureParser[S]{m: m}
}
