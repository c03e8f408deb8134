package rxparse

import (
	"errors"
	"fmt"

	"github.com/coregx/rxparse/engine"
)

// Group access errors. They are distinct from match-time parser errors.
var (
	// ErrGroupOutOfRange indicates an index outside [0, Len()).
	ErrGroupOutOfRange = errors.New("capture group index out of range")

	// ErrGroupNotMatched indicates a group that exists but did not
	// participate in the match, e.g. the untaken side of an alternation.
	ErrGroupNotMatched = errors.New("capture group did not participate in the match")

	// ErrGroupUnknown indicates a group name the pattern does not define.
	ErrGroupUnknown = errors.New("unknown capture group name")
)

// GroupError wraps a group access error with the offending group.
type GroupError struct {
	Index int
	Name  string
	Err   error
}

// Error implements the error interface
func (e *GroupError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("rxparse: group %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("rxparse: group %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error
func (e *GroupError) Unwrap() error {
	return e.Err
}

// Captures is the result of a successful Capture parser: the matched span,
// already split off the stream, and its capture group bounds.
//
// Captures is immutable. For []byte streams the matched span and the group
// slices alias the stream's buffer and must not be modified.
type Captures[S Haystack] struct {
	slice S
	locs  engine.Locations
	names []string
}

// Match returns the whole matched span (group 0).
func (c *Captures[S]) Match() S {
	return c.slice
}

// Len returns the number of groups including group 0.
func (c *Captures[S]) Len() int {
	return c.locs.Len()
}

// Span returns the bounds of group i relative to the matched span.
func (c *Captures[S]) Span(i int) (start, end int, ok bool) {
	start, end, ok = c.locs.Get(i)
	if !ok || start > end || end > len(c.slice) {
		return 0, 0, false
	}
	return start, end, true
}

// Get returns group i.
//
// It returns a *GroupError wrapping ErrGroupOutOfRange if i is not a valid
// group index, or ErrGroupNotMatched if group i did not participate.
func (c *Captures[S]) Get(i int) (S, error) {
	var zero S
	if i < 0 || i >= c.locs.Len() {
		return zero, &GroupError{Index: i, Err: ErrGroupOutOfRange}
	}
	start, end, ok := c.Span(i)
	if !ok {
		return zero, &GroupError{Index: i, Err: ErrGroupNotMatched}
	}
	return c.slice[start:end], nil
}

// Index returns group i and panics where Get would return an error.
//
// Example:
//
//	caps, _ := rxparse.Capture[string](`^(\d+)x(\d+)`).ParseNext(stream.New("11x42"))
//	w, h := caps.Index(1), caps.Index(2) // "11", "42"
func (c *Captures[S]) Index(i int) S {
	g, err := c.Get(i)
	if err != nil {
		panic(err)
	}
	return g
}

// Name returns the group called name. Unknown names yield ErrGroupUnknown.
func (c *Captures[S]) Name(name string) (S, error) {
	var zero S
	if name != "" {
		for i, n := range c.names {
			if n == name {
				g, err := c.Get(i)
				if err != nil {
					return zero, &GroupError{Index: i, Name: name, Err: errors.Unwrap(err)}
				}
				return g, nil
			}
		}
	}
	return zero, &GroupError{Index: -1, Name: name, Err: ErrGroupUnknown}
}

// Groups returns every group in order. Groups that did not participate are
// the zero value of S.
func (c *Captures[S]) Groups() []S {
	out := make([]S, c.locs.Len())
	for i := range out {
		if start, end, ok := c.Span(i); ok {
			out[i] = c.slice[start:end]
		}
	}
	return out
}
