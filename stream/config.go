package stream

import "fmt"

// Config configures how a Reader pulls data from an io.Reader.
type Config struct {
	// BufferSize is the chunk size for each read from the io.Reader.
	// Default: 64KB (65536).
	// Larger values reduce syscall overhead but use more memory.
	BufferSize int

	// MaxBuffered limits how many unconsumed bytes a Reader may hold while
	// parsers keep reporting incomplete input. It bounds memory on streams
	// where a single token never terminates.
	//
	// Default: 1MB. Set to -1 for unlimited (use with caution on infinite
	// streams!). Set to 0 to use the default.
	MaxBuffered int
}

const (
	defaultBufferSize  = 64 * 1024
	defaultMaxBuffered = 1024 * 1024
	minBufferSize      = 1
)

// DefaultConfig returns a Config with sensible defaults.
// BufferSize defaults to 64KB, MaxBuffered to 1MB.
func DefaultConfig() Config {
	return Config{
		BufferSize:  defaultBufferSize,
		MaxBuffered: defaultMaxBuffered,
	}
}

// ErrBufferTooSmall is returned by Validate when BufferSize is negative or
// MaxBuffered is smaller than one chunk.
type ErrBufferTooSmall struct {
	Requested int
	Minimum   int
}

func (e ErrBufferTooSmall) Error() string {
	return fmt.Sprintf("stream: buffer size %d too small (minimum %d)", e.Requested, e.Minimum)
}

// ErrBufferLimit is returned by Reader.Fill when a parser still needs more
// input but the unconsumed buffer already holds MaxBuffered bytes.
type ErrBufferLimit struct {
	Buffered int
	Limit    int
	Offset   int64
}

func (e *ErrBufferLimit) Error() string {
	return fmt.Sprintf("stream: %d unconsumed bytes at offset %d exceed limit %d",
		e.Buffered, e.Offset, e.Limit)
}

// Validate validates the Config and returns an error if invalid.
// Zero values are valid and mean "use the default".
func (c Config) Validate() error {
	if c.BufferSize < 0 {
		return ErrBufferTooSmall{Requested: c.BufferSize, Minimum: minBufferSize}
	}
	if c.MaxBuffered > 0 && c.BufferSize > 0 && c.MaxBuffered < c.BufferSize {
		return ErrBufferTooSmall{Requested: c.MaxBuffered, Minimum: c.BufferSize}
	}
	return nil
}

// ApplyDefaults returns a Config with defaults applied for any zero values.
func (c Config) ApplyDefaults() Config {
	result := c

	if result.BufferSize <= 0 {
		result.BufferSize = defaultBufferSize
	}

	if result.MaxBuffered == 0 {
		result.MaxBuffered = defaultMaxBuffered
	}

	// A limit below one chunk would reject the first read.
	if result.MaxBuffered > 0 && result.MaxBuffered < result.BufferSize {
		result.MaxBuffered = result.BufferSize
	}

	return result
}
