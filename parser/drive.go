package parser

import (
	"context"
	"errors"
	"fmt"

	"github.com/coregx/rxparse/stream"
)

// Next runs p against r, pulling more input while p reports incomplete.
//
// Each retry starts from the same checkpoint with a larger buffer; no
// partial parser state is carried across retries.
func Next[O any](ctx context.Context, r *stream.Reader, p Parser[[]byte, O]) (O, error) {
	var zero O
	for {
		cp := r.Checkpoint()
		out, err := p.ParseNext(r)
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, ErrIncomplete) {
			return zero, err
		}

		r.Reset(cp)
		if ferr := r.Fill(ctx); ferr != nil {
			return zero, fmt.Errorf("%w: %w", err, ferr)
		}
	}
}

// Drive calls Next repeatedly, passing each output to emit, until the input
// is exhausted. A parser that succeeds without consuming input fails with
// ErrNoProgress. Returning an error from emit stops the loop.
func Drive[O any](ctx context.Context, r *stream.Reader, p Parser[[]byte, O], emit func(O) error) error {
	for {
		if r.Len() == 0 {
			if !r.IsPartial() {
				return nil
			}
			if err := r.Fill(ctx); err != nil {
				return err
			}
			continue
		}

		start := r.Offset()
		out, err := Next(ctx, r, p)
		if err != nil {
			return err
		}
		if r.Offset() == start {
			return &Error{Kind: KindCut, Offset: start, Cause: ErrNoProgress}
		}
		if err := emit(out); err != nil {
			return err
		}
	}
}
