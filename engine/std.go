package engine

import (
	"regexp"

	"github.com/coregx/rxparse/stream"
)

// Std adapts a precompiled stdlib *regexp.Regexp. It exists so callers that
// already hold a stdlib pattern can use it without recompiling.
type Std[S stream.Haystack] struct {
	re     *regexp.Regexp
	groups int
}

// NewStd wraps re for haystacks of type S.
func NewStd[S stream.Haystack](re *regexp.Regexp) *Std[S] {
	return &Std[S]{re: re, groups: re.NumSubexp() + 1}
}

// NewLocations implements Engine.
func (e *Std[S]) NewLocations() Locations {
	return NewSlots(e.groups)
}

// CapturesRead implements Engine.
func (e *Std[S]) CapturesRead(locs Locations, haystack S) (start, end int, ok bool) {
	var idx []int
	switch h := any(haystack).(type) {
	case string:
		idx = e.re.FindStringSubmatchIndex(h)
	case []byte:
		idx = e.re.FindSubmatchIndex(h)
	}

	slotsOf(locs).Record(idx)
	if idx == nil {
		return 0, 0, false
	}
	return idx[0], idx[1], true
}

// SubexpNames implements Named.
func (e *Std[S]) SubexpNames() []string {
	return e.re.SubexpNames()
}

// String returns the source expression.
func (e *Std[S]) String() string {
	return e.re.String()
}
