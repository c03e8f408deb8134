package rxparse

import "github.com/coregx/rxparse/stream"

// RegexParser consumes and returns the span matched by its pattern at the
// current stream position.
//
// It implements parser.Parser[S, S]. NoMatch is reported as a backtrack
// error and an undecidable partial buffer as an incomplete error; in both
// cases the stream is left untouched.
type RegexParser[S Haystack] struct {
	m *Matcher[S]
}

// Regex returns a parser for pattern. It panics if pattern does not compile.
//
// Example:
//
//	var digits = rxparse.Regex[string](`^\d+`)
func Regex[S Haystack, P Pattern](pattern P) *RegexParser[S] {
	return MustCompile[S](pattern).Regex()
}

// NewRegex is like Regex but returns a *CompileError instead of panicking.
func NewRegex[S Haystack, P Pattern](pattern P) (*RegexParser[S], error) {
	m, err := Compile[S](pattern)
	if err != nil {
		return nil, err
	}
	return m.Regex(), nil
}

// ParseNext implements parser.Parser.
func (p *RegexParser[S]) ParseNext(in stream.Stream[S]) (S, error) {
	caps, err := p.m.captures(in)
	if err != nil {
		var zero S
		return zero, err
	}
	return caps.slice, nil
}

// Matcher returns the compiled pattern.
func (p *RegexParser[S]) Matcher() *Matcher[S] {
	return p.m
}

// CaptureParser is like RegexParser but returns the match together with its
// capture groups.
//
// It implements parser.Parser[S, *Captures[S]].
type CaptureParser[S Haystack] struct {
	m *Matcher[S]
}

// Capture returns a captures parser for pattern. It panics if pattern does
// not compile.
//
// Example:
//
//	var dims = rxparse.Capture[string](`^(\d+)x(\d+)`)
func Capture[S Haystack, P Pattern](pattern P) *CaptureParser[S] {
	return MustCompile[S](pattern).Capture()
}

// NewCapture is like Capture but returns a *CompileError instead of
// panicking.
func NewCapture[S Haystack, P Pattern](pattern P) (*CaptureParser[S], error) {
	m, err := Compile[S](pattern)
	if err != nil {
		return nil, err
	}
	return m.Capture(), nil
}

// ParseNext implements parser.Parser.
func (p *CaptureParser[S]) ParseNext(in stream.Stream[S]) (*Captures[S], error) {
	return p.m.captures(in)
}

// Matcher returns the compiled pattern.
func (p *CaptureParser[S]) Matcher() *Matcher[S] {
	return p.m
}
