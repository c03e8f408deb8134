package stream

import (
	"context"
	"errors"
	"io"
)

// maxEmptyReads matches bufio: give up after this many (0, nil) reads.
const maxEmptyReads = 100

// Reader is a partial byte cursor fed from an io.Reader.
//
// Fill reads one chunk at a time and appends it to the buffered suffix. When
// the underlying reader reports io.EOF the cursor is completed, so parsers
// switch from "incomplete" to definitive answers on whatever is left.
type Reader struct {
	*Input[[]byte]

	r     io.Reader
	cfg   Config
	chunk []byte
	reads int
}

// NewReader returns a Reader over r. Zero fields in cfg take their defaults.
func NewReader(r io.Reader, cfg Config) (*Reader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.ApplyDefaults()

	return &Reader{
		Input: NewPartial[[]byte](nil),
		r:     r,
		cfg:   cfg,
		chunk: make([]byte, cfg.BufferSize),
	}, nil
}

// Config returns the effective configuration.
func (r *Reader) Config() Config {
	return r.cfg
}

// Reads returns the number of chunks appended so far.
func (r *Reader) Reads() int {
	return r.reads
}

// Fill appends the next chunk from the underlying reader.
//
// It returns io.ErrUnexpectedEOF if the cursor is already complete (a parser
// asked for more data that can never arrive), ctx.Err() if ctx is done, and
// *ErrBufferLimit if the unconsumed buffer reached Config.MaxBuffered.
// Reaching io.EOF is not an error: the cursor is completed and Fill returns
// nil.
func (r *Reader) Fill(ctx context.Context) error {
	if !r.IsPartial() {
		return io.ErrUnexpectedEOF
	}
	if limit := r.cfg.MaxBuffered; limit > 0 && r.Len() >= limit {
		return &ErrBufferLimit{Buffered: r.Len(), Limit: limit, Offset: r.Offset()}
	}

	for empty := 0; empty < maxEmptyReads; empty++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := r.r.Read(r.chunk)
		if n > 0 {
			r.reads++
			r.Feed(r.chunk[:n])
		}

		switch {
		case errors.Is(err, io.EOF):
			r.Complete()
			return nil
		case err != nil:
			return err
		case n > 0:
			return nil
		}
		// (0, nil) is allowed by io.Reader; read again.
	}
	return io.ErrNoProgress
}
