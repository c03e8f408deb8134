// Package engine defines the minimal contract a regex engine must satisfy to
// back an rxparse parser, together with implementations for the engines this
// module supports.
//
// An engine only has to do two things: allocate scratch storage for capture
// locations, and find the first match anywhere in a haystack while filling
// that storage. Anchoring and streaming decisions are made by the caller, so
// an engine never needs to know whether more input may arrive.
//
// Implementations:
//   - Text, Bytes: coregex over string and []byte haystacks (the default)
//   - Std: a precompiled stdlib *regexp.Regexp
//   - Literals: an Aho-Corasick automaton over a fixed word set
//   - Rure: the Rust regex engine through rure-go (build tag "rure")
package engine

import "github.com/coregx/rxparse/stream"

// Locations is read access to the capture group bounds of one match.
//
// Bounds are byte offsets relative to the haystack the match ran against.
type Locations interface {
	// Get returns the bounds of group i. ok is false if the group did not
	// participate in the match or i is out of range.
	Get(i int) (start, end int, ok bool)

	// Len returns the number of groups, including group 0.
	Len() int
}

// Engine is the capability contract over haystacks of type S.
//
// Implementations must be safe for concurrent use: all per-match state lives
// in the Locations value handed to CapturesRead.
type Engine[S stream.Haystack] interface {
	// NewLocations allocates scratch storage sized to the pattern's group
	// count. The count is the same for every call.
	NewLocations() Locations

	// CapturesRead searches haystack for the first match, records all group
	// bounds into locs and returns the bounds of the whole match. locs must
	// come from NewLocations of the same engine.
	CapturesRead(locs Locations, haystack S) (start, end int, ok bool)
}

// Named is implemented by engines that know their capture group names.
// names[0] is always empty; unnamed groups have empty names.
type Named interface {
	SubexpNames() []string
}
