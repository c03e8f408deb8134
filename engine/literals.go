package engine

import (
	"errors"
	"strings"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/coregex"

	"github.com/coregx/rxparse/internal/conv"
	"github.com/coregx/rxparse/stream"
)

// ErrEmptyLiteral is returned when a literal set is empty or contains an
// empty word.
var ErrEmptyLiteral = errors.New("engine: empty literal")

// Literals matches any word of a fixed set using an Aho-Corasick automaton.
//
// It reports only group 0. The leftmost match wins; among words matching at
// the same position the automaton's own preference applies.
type Literals[S stream.Haystack] struct {
	auto  *ahocorasick.Automaton
	words []string
}

// NewLiterals builds an automaton over words.
func NewLiterals[S stream.Haystack](words ...string) (*Literals[S], error) {
	if len(words) == 0 {
		return nil, ErrEmptyLiteral
	}

	builder := ahocorasick.NewBuilder()
	for _, w := range words {
		if w == "" {
			return nil, ErrEmptyLiteral
		}
		builder.AddPattern([]byte(w))
	}

	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}

	return &Literals[S]{
		auto:  auto,
		words: append([]string(nil), words...),
	}, nil
}

// NewLocations implements Engine.
func (e *Literals[S]) NewLocations() Locations {
	return NewSlots(1)
}

// CapturesRead implements Engine.
func (e *Literals[S]) CapturesRead(locs Locations, haystack S) (start, end int, ok bool) {
	slots := slotsOf(locs)

	m := e.auto.Find(conv.Bytes(haystack), 0)
	if m == nil {
		slots.Record(nil)
		return 0, 0, false
	}
	slots.Record([]int{m.Start, m.End})
	return m.Start, m.End, true
}

// Words returns the literal set in insertion order.
func (e *Literals[S]) Words() []string {
	return append([]string(nil), e.words...)
}

// String returns an equivalent regex alternation, for diagnostics.
func (e *Literals[S]) String() string {
	quoted := make([]string, len(e.words))
	for i, w := range e.words {
		quoted[i] = coregex.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}
