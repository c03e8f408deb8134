// Package parser is the small combinator layer rxparse parsers plug into.
//
// A Parser reads from a stream.Stream and either returns a value, advancing
// the cursor, or returns an *Error leaving the cursor where it was. Errors
// come in three kinds: backtrack (try something else), cut (give up) and
// incomplete (feed more input and call again).
//
// Basic usage:
//
//	digits := rxparse.Regex[string](`^\d+`)
//	n := parser.Map(digits, func(s string) int { v, _ := strconv.Atoi(s); return v })
//	rest, v, err := parser.Parse(n, "42abc") // "abc", 42, nil
package parser

import (
	"errors"

	"github.com/coregx/rxparse/stream"
)

// Parser is a single parsing step over a stream of S producing O.
type Parser[S stream.Haystack, O any] interface {
	ParseNext(in stream.Stream[S]) (O, error)
}

// Func adapts a function to the Parser interface.
type Func[S stream.Haystack, O any] func(in stream.Stream[S]) (O, error)

// ParseNext implements Parser.
func (f Func[S, O]) ParseNext(in stream.Stream[S]) (O, error) {
	return f(in)
}

// Map applies f to the output of p.
func Map[S stream.Haystack, A, B any](p Parser[S, A], f func(A) B) Parser[S, B] {
	return Func[S, B](func(in stream.Stream[S]) (B, error) {
		a, err := p.ParseNext(in)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	})
}

// TryMap applies a fallible f to the output of p. If f fails, the cursor is
// restored and a backtrack error wrapping f's error is returned.
func TryMap[S stream.Haystack, A, B any](p Parser[S, A], f func(A) (B, error)) Parser[S, B] {
	return Func[S, B](func(in stream.Stream[S]) (B, error) {
		var zero B
		cp := in.Checkpoint()
		a, err := p.ParseNext(in)
		if err != nil {
			return zero, err
		}
		b, err := f(a)
		if err != nil {
			in.Reset(cp)
			return zero, &Error{Kind: KindBacktrack, Offset: cp.Offset(), Cause: err}
		}
		return b, nil
	})
}

// Alt tries each parser in order and returns the first success.
//
// Between attempts the cursor is restored. A cut or incomplete error stops
// the search immediately: an alternative that needs more input must not be
// skipped in favor of a later one. If every alternative backtracks, the last
// backtrack error is returned.
func Alt[S stream.Haystack, O any](ps ...Parser[S, O]) Parser[S, O] {
	return Func[S, O](func(in stream.Stream[S]) (O, error) {
		var zero O
		cp := in.Checkpoint()
		var last error = Backtrack(in)

		for _, p := range ps {
			out, err := p.ParseNext(in)
			if err == nil {
				return out, nil
			}
			if !errors.Is(err, ErrBacktrack) {
				return zero, err
			}
			in.Reset(cp)
			last = err
		}
		return zero, last
	})
}

// Repeat0 applies p until it backtracks and returns all outputs.
//
// Incomplete and cut errors are returned as-is. An iteration that succeeds
// without consuming input fails with ErrNoProgress to avoid looping forever.
func Repeat0[S stream.Haystack, O any](p Parser[S, O]) Parser[S, []O] {
	return Func[S, []O](func(in stream.Stream[S]) ([]O, error) {
		var outs []O
		for {
			cp := in.Checkpoint()
			out, err := p.ParseNext(in)
			if err != nil {
				if errors.Is(err, ErrBacktrack) {
					in.Reset(cp)
					return outs, nil
				}
				return nil, err
			}
			if in.Offset() == cp.Offset() {
				return nil, &Error{Kind: KindCut, Offset: cp.Offset(), Cause: ErrNoProgress}
			}
			outs = append(outs, out)
		}
	})
}

// Cut turns backtrack errors from p into cut errors.
func Cut[S stream.Haystack, O any](p Parser[S, O]) Parser[S, O] {
	return Func[S, O](func(in stream.Stream[S]) (O, error) {
		out, err := p.ParseNext(in)
		var pe *Error
		if errors.As(err, &pe) && pe.Kind == KindBacktrack {
			cut := *pe
			cut.Kind = KindCut
			return out, &cut
		}
		return out, err
	})
}

// Label adds a context name to errors returned by p.
func Label[S stream.Haystack, O any](p Parser[S, O], name string) Parser[S, O] {
	return Func[S, O](func(in stream.Stream[S]) (O, error) {
		out, err := p.ParseNext(in)
		var pe *Error
		if errors.As(err, &pe) {
			labeled := *pe
			labeled.Labels = append(append([]string(nil), pe.Labels...), name)
			return out, &labeled
		}
		return out, err
	})
}

// Parse runs p once against complete input s and returns the unconsumed
// remainder together with p's output.
func Parse[S stream.Haystack, O any](p Parser[S, O], s S) (S, O, error) {
	in := stream.New(s)
	out, err := p.ParseNext(in)
	return in.PeekFinish(), out, err
}
