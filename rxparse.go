// Package rxparse turns compiled regular expressions into parsers over
// incremental input.
//
// A parser built from a pattern tries to match at the current position of a
// stream. On success it consumes the matched span and returns it (Regex) or
// returns it together with its capture groups (Capture). It works the same on
// text (string) and raw byte ([]byte) streams, and on partial streams where
// more data may still arrive:
//   - a match that ends before the end of the buffered data is final
//   - a match or non-match that touches the end of the buffered data is
//     reported as incomplete until the stream is completed
//
// Basic usage:
//
//	digits := rxparse.Regex[string](`^\d+`)
//	rest, n, err := parser.Parse(digits, "42abc")
//	// rest = "abc", n = "42"
//
// Streaming usage:
//
//	in := stream.NewPartial([]byte("123"))
//	_, err := rxparse.Regex[[]byte](`^\d+`).ParseNext(in)
//	// errors.Is(err, parser.ErrIncomplete): "1234" may still arrive
//
// Captures:
//
//	dims := rxparse.Capture[string](`^(\d+)x(\d+)`)
//	_, caps, _ := parser.Parse(dims, "11x42abc")
//	// caps.Index(1) = "11", caps.Index(2) = "42"
//
// Patterns are compiled once, when the parser is built. The regex engine is
// coregex by default; literal word sets use an Aho-Corasick automaton and any
// engine.Engine can be plugged in with FromEngine.
package rxparse

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/coregx/coregex"
	"github.com/coregx/coregex/meta"

	"github.com/coregx/rxparse/engine"
	"github.com/coregx/rxparse/stream"
)

// Haystack re-exports stream.Haystack: string or []byte.
type Haystack = stream.Haystack

// Pattern is the set of pattern forms accepted by Compile: source text, or
// an already compiled coregex or stdlib regexp.
type Pattern interface {
	string | *coregex.Regexp | *regexp.Regexp
}

// ErrEmptyLiteral is returned by CompileLiterals for an empty word set or
// an empty word.
var ErrEmptyLiteral = engine.ErrEmptyLiteral

// CompileError reports a pattern that failed to compile.
// Err is the engine's own diagnostic.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	return fmt.Sprintf("rxparse: compile %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Compile builds a Matcher for haystacks of type S from pattern.
//
// Invalid syntax returns a *CompileError. Precompiled patterns never fail.
//
// Example:
//
//	m, err := rxparse.Compile[string](`^\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile[S Haystack, P Pattern](pattern P) (*Matcher[S], error) {
	switch p := any(pattern).(type) {
	case string:
		return compileString[S](p, nil)
	case *coregex.Regexp:
		if p == nil {
			return nil, &CompileError{Err: errors.New("nil pattern")}
		}
		return newMatcher(coregexEngine[S](p), p.String()), nil
	case *regexp.Regexp:
		if p == nil {
			return nil, &CompileError{Err: errors.New("nil pattern")}
		}
		return newMatcher[S](engine.NewStd[S](p), p.String()), nil
	}
	// Unreachable: Pattern is a closed type set.
	return nil, &CompileError{Err: fmt.Errorf("unsupported pattern type %T", pattern)}
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
//
// This is meant for patterns known to be valid at build time, typically
// string literals in package-level parser definitions.
func MustCompile[S Haystack, P Pattern](pattern P) *Matcher[S] {
	m, err := Compile[S](pattern)
	if err != nil {
		panic(mustPanic(pattern, err))
	}
	return m
}

// CompileWithConfig compiles pattern with a custom coregex configuration.
//
// Example:
//
//	config := rxparse.DefaultConfig()
//	config.MaxDFAStates = 50000
//	m, err := rxparse.CompileWithConfig[[]byte](`(a|b|c)*d`, config)
func CompileWithConfig[S Haystack](pattern string, config meta.Config) (*Matcher[S], error) {
	return compileString[S](pattern, &config)
}

// DefaultConfig returns the default coregex configuration.
func DefaultConfig() meta.Config {
	return coregex.DefaultConfig()
}

// CompileLiterals builds a Matcher that matches any of words, backed by an
// Aho-Corasick automaton. It only reports group 0.
func CompileLiterals[S Haystack](words ...string) (*Matcher[S], error) {
	e, err := engine.NewLiterals[S](words...)
	if err != nil {
		return nil, &CompileError{Pattern: fmt.Sprint(words), Err: err}
	}
	return newMatcher[S](e, e.String()), nil
}

// FromEngine builds a Matcher from any engine. expr is used for
// diagnostics only.
func FromEngine[S Haystack](e engine.Engine[S], expr string) *Matcher[S] {
	return newMatcher(e, expr)
}

func compileString[S Haystack](pattern string, config *meta.Config) (*Matcher[S], error) {
	var (
		e   any
		err error
	)
	var zero S
	switch any(zero).(type) {
	case string:
		if config != nil {
			e, err = engine.CompileTextWithConfig(pattern, *config)
		} else {
			e, err = engine.CompileText(pattern)
		}
	case []byte:
		if config != nil {
			e, err = engine.CompileBytesWithConfig(pattern, *config)
		} else {
			e, err = engine.CompileBytes(pattern)
		}
	}
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return newMatcher(e.(engine.Engine[S]), pattern), nil
}

// coregexEngine picks the text or bytes coregex engine for S.
func coregexEngine[S Haystack](re *coregex.Regexp) engine.Engine[S] {
	var e any
	var zero S
	switch any(zero).(type) {
	case string:
		e = engine.NewText(re)
	case []byte:
		e = engine.NewBytes(re)
	}
	return e.(engine.Engine[S])
}

func mustPanic(pattern any, err error) string {
	expr := fmt.Sprint(pattern)
	var ce *CompileError
	if errors.As(err, &ce) && ce.Err != nil {
		err = ce.Err
	}
	return "rxparse: Compile(`" + expr + "`): " + err.Error()
}
