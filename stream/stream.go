// Package stream provides the input cursors consumed by rxparse parsers.
//
// A cursor exposes the currently buffered, unconsumed suffix of the input
// (the haystack), splits consumed prefixes off it, and reports whether more
// data may still arrive. Parsers never read from a cursor beyond what it has
// buffered; when a decision depends on data that has not arrived yet they
// return an "incomplete" error and the caller is expected to feed more input
// and try again.
//
// Example usage:
//
//	in := stream.NewPartial([]byte("123"))
//	_, err := digits.ParseNext(in) // incomplete: more digits may follow
//	in.Feed([]byte("abc"))
//	n, err := digits.ParseNext(in) // n = "123"
package stream

// Haystack is the set of buffer kinds a cursor may hold: Unicode text or
// raw bytes. Raw bytes are not required to be valid UTF-8.
type Haystack interface {
	string | []byte
}

// Stream is the cursor contract parsers are written against.
//
// Implementations are owned and driven by a single caller; they are not safe
// for concurrent use.
type Stream[S Haystack] interface {
	// PeekFinish returns the whole buffered, unconsumed suffix without
	// advancing the cursor.
	PeekFinish() S

	// NextSlice consumes the first n units of the buffered suffix and
	// returns them. n must not exceed len(PeekFinish()).
	NextSlice(n int) S

	// Offset returns the absolute number of units consumed so far.
	Offset() int64

	// PartialSupported reports whether this cursor can ever be partial.
	PartialSupported() bool

	// IsPartial reports whether more data may still be appended to the
	// buffered suffix.
	IsPartial() bool

	// Checkpoint captures the cursor position.
	Checkpoint() Checkpoint[S]

	// Reset rewinds the cursor to a checkpoint taken from it.
	Reset(Checkpoint[S])
}

// Checkpoint is an opaque cursor position returned by Stream.Checkpoint.
// For Input it holds the buffered suffix as well, so it must not be used
// after a later Feed.
type Checkpoint[S Haystack] struct {
	buf    S
	offset int64
}

// Offset returns the absolute offset recorded by the checkpoint.
func (c Checkpoint[S]) Offset() int64 {
	return c.offset
}

// Input is an in-memory cursor over a text or byte buffer.
//
// An Input created with New is complete: its buffer is all the data there
// is. An Input created with NewPartial accepts more data through Feed until
// Complete is called.
type Input[S Haystack] struct {
	buf       S
	offset    int64
	partial   bool
	completed bool
}

// New returns a complete cursor over s.
func New[S Haystack](s S) *Input[S] {
	return &Input[S]{buf: s}
}

// NewPartial returns a partial cursor whose buffer currently holds s.
func NewPartial[S Haystack](s S) *Input[S] {
	return &Input[S]{buf: s, partial: true}
}

// PeekFinish implements Stream.
func (in *Input[S]) PeekFinish() S {
	return in.buf
}

// NextSlice implements Stream.
func (in *Input[S]) NextSlice(n int) S {
	if n < 0 || n > len(in.buf) {
		panic("stream: NextSlice out of range")
	}
	head := in.buf[:n]
	in.buf = in.buf[n:]
	in.offset += int64(n)
	return head
}

// Offset implements Stream.
func (in *Input[S]) Offset() int64 {
	return in.offset
}

// PartialSupported implements Stream.
func (in *Input[S]) PartialSupported() bool {
	return in.partial
}

// IsPartial implements Stream.
func (in *Input[S]) IsPartial() bool {
	return in.partial && !in.completed
}

// Checkpoint implements Stream.
func (in *Input[S]) Checkpoint() Checkpoint[S] {
	return Checkpoint[S]{buf: in.buf, offset: in.offset}
}

// Reset implements Stream.
func (in *Input[S]) Reset(c Checkpoint[S]) {
	in.buf = c.buf
	in.offset = c.offset
}

// Len returns the number of buffered, unconsumed units.
func (in *Input[S]) Len() int {
	return len(in.buf)
}

// Feed appends more data to the buffered suffix.
//
// Slices previously returned by NextSlice stay valid: the buffer is
// reallocated rather than written in place. Feeding a completed cursor
// panics.
func (in *Input[S]) Feed(more S) {
	if in.completed {
		panic("stream: Feed after Complete")
	}
	if len(more) == 0 {
		return
	}
	in.buf = concat(in.buf, more)
}

// Complete marks the end of the data. Afterwards IsPartial reports false
// and parsers make definitive decisions on the buffered suffix.
func (in *Input[S]) Complete() {
	in.completed = true
}

func concat[S Haystack](a, b S) S {
	switch x := any(a).(type) {
	case string:
		return any(x + any(b).(string)).(S)
	case []byte:
		y := any(b).([]byte)
		out := make([]byte, len(x), len(x)+len(y))
		copy(out, x)
		return any(append(out, y...)).(S)
	}
	panic("stream: unsupported haystack type")
}
