package engine

import (
	"regexp"
	"regexp/syntax"

	"github.com/coregx/coregex"
	"github.com/coregx/coregex/meta"

	"github.com/coregx/rxparse/internal/conv"
)

// Text is the coregex engine over string haystacks.
//
// coregex can misreport capture groups that did not participate in a match
// (stale bounds, or an empty match where there was none). For patterns with
// such groups, Text and Bytes keep a stdlib twin of the pattern and take the
// group bounds from it once coregex has found a match. Patterns where every
// group always participates run on coregex alone.
type Text struct {
	re     *coregex.Regexp
	twin   *regexp.Regexp
	groups int
}

// NewText wraps a compiled coregex pattern for string haystacks.
func NewText(re *coregex.Regexp) *Text {
	return &Text{re: re, twin: twinOf(re), groups: len(re.SubexpNames())}
}

// CompileText compiles pattern for string haystacks.
func CompileText(pattern string) (*Text, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return NewText(re), nil
}

// CompileTextWithConfig compiles pattern with a custom meta-engine config.
func CompileTextWithConfig(pattern string, config meta.Config) (*Text, error) {
	re, err := coregex.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}
	return NewText(re), nil
}

// NewLocations implements Engine.
func (e *Text) NewLocations() Locations {
	return NewSlots(e.groups)
}

// CapturesRead implements Engine.
func (e *Text) CapturesRead(locs Locations, haystack string) (start, end int, ok bool) {
	return capturesRead(e.re, e.twin, slotsOf(locs), conv.StringToBytes(haystack))
}

// SubexpNames implements Named.
func (e *Text) SubexpNames() []string {
	return e.re.SubexpNames()
}

// String returns the source expression.
func (e *Text) String() string {
	return e.re.String()
}

// Regexp returns the underlying coregex pattern.
func (e *Text) Regexp() *coregex.Regexp {
	return e.re
}

// Bytes is the coregex engine over []byte haystacks. Haystacks need not be
// valid UTF-8. Group bounds follow the same rules as Text.
type Bytes struct {
	re     *coregex.Regexp
	twin   *regexp.Regexp
	groups int
}

// NewBytes wraps a compiled coregex pattern for []byte haystacks.
func NewBytes(re *coregex.Regexp) *Bytes {
	return &Bytes{re: re, twin: twinOf(re), groups: len(re.SubexpNames())}
}

// CompileBytes compiles pattern for []byte haystacks.
func CompileBytes(pattern string) (*Bytes, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return NewBytes(re), nil
}

// CompileBytesWithConfig compiles pattern with a custom meta-engine config.
func CompileBytesWithConfig(pattern string, config meta.Config) (*Bytes, error) {
	re, err := coregex.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}
	return NewBytes(re), nil
}

// NewLocations implements Engine.
func (e *Bytes) NewLocations() Locations {
	return NewSlots(e.groups)
}

// CapturesRead implements Engine.
func (e *Bytes) CapturesRead(locs Locations, haystack []byte) (start, end int, ok bool) {
	return capturesRead(e.re, e.twin, slotsOf(locs), haystack)
}

// SubexpNames implements Named.
func (e *Bytes) SubexpNames() []string {
	return e.re.SubexpNames()
}

// String returns the source expression.
func (e *Bytes) String() string {
	return e.re.String()
}

// Regexp returns the underlying coregex pattern.
func (e *Bytes) Regexp() *coregex.Regexp {
	return e.re
}

func capturesRead(re *coregex.Regexp, twin *regexp.Regexp, slots *Slots, haystack []byte) (start, end int, ok bool) {
	idx := re.FindSubmatchIndex(haystack)
	if idx != nil && twin != nil {
		idx = twin.FindSubmatchIndex(haystack)
	}
	slots.Record(idx)
	if idx == nil {
		return 0, 0, false
	}
	return idx[0], idx[1], true
}

// twinOf returns a stdlib copy of re if some capture group of re may not
// participate in a match, and nil otherwise.
func twinOf(re *coregex.Regexp) *regexp.Regexp {
	if !hasOptionalGroup(re.String()) {
		return nil
	}
	twin, err := regexp.Compile(re.String())
	if err != nil {
		return nil
	}
	return twin
}

// hasOptionalGroup reports whether a capture group of pattern sits under a
// repetition that allows zero iterations or inside an alternation, so that
// a match may leave it unset.
func hasOptionalGroup(pattern string) bool {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return false
	}
	return optionalCapture(re, false)
}

func optionalCapture(re *syntax.Regexp, optional bool) bool {
	switch re.Op {
	case syntax.OpCapture:
		if optional {
			return true
		}
	case syntax.OpStar, syntax.OpQuest, syntax.OpAlternate:
		optional = true
	case syntax.OpRepeat:
		if re.Min == 0 {
			optional = true
		}
	}
	for _, sub := range re.Sub {
		if optionalCapture(sub, optional) {
			return true
		}
	}
	return false
}
