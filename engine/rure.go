//go:build rure

package engine

import (
	rure "github.com/BurntSushi/rure-go"

	"github.com/coregx/rxparse/internal/conv"
	"github.com/coregx/rxparse/stream"
)

// Rure runs patterns on the Rust regex engine through rure-go. It uses
// leftmost-first semantics and requires cgo and librure at build time.
type Rure[S stream.Haystack] struct {
	re      *rure.Regex
	pattern string
}

// CompileRure compiles pattern with default rure options.
func CompileRure[S stream.Haystack](pattern string) (*Rure[S], error) {
	re, err := rure.CompileOptions(pattern, 0, rure.NewOptions())
	if err != nil {
		return nil, err
	}
	return &Rure[S]{re: re, pattern: pattern}, nil
}

// rureLocations wraps rure's own capture storage.
type rureLocations struct {
	caps *rure.Captures
}

func (l *rureLocations) Get(i int) (start, end int, ok bool) {
	if i < 0 || i >= l.caps.Len() {
		return 0, 0, false
	}
	return l.caps.Group(i)
}

func (l *rureLocations) Len() int {
	return l.caps.Len()
}

// NewLocations implements Engine.
func (e *Rure[S]) NewLocations() Locations {
	return &rureLocations{caps: e.re.NewCaptures()}
}

// CapturesRead implements Engine.
func (e *Rure[S]) CapturesRead(locs Locations, haystack S) (start, end int, ok bool) {
	l, isRure := locs.(*rureLocations)
	if !isRure {
		panic("engine: capture locations were not allocated by this engine")
	}

	if !e.re.CapturesBytes(l.caps, conv.Bytes(haystack)) {
		return 0, 0, false
	}
	return l.caps.Group(0)
}

// String returns the source expression.
func (e *Rure[S]) String() string {
	return e.pattern
}
