// Package conv provides zero-copy haystack conversions for the engines.
//
// Several engines only accept []byte haystacks. Converting a string view with
// []byte(s) would copy the whole buffered suffix on every match attempt, so
// these helpers reinterpret the memory instead. The returned slices alias the
// input and must never be written to.
package conv

import "unsafe"

// StringToBytes returns a read-only []byte view of s without copying.
//
//go:inline
func StringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// Bytes returns a read-only []byte view of a text or byte haystack.
func Bytes[S ~string | ~[]byte](h S) []byte {
	switch v := any(h).(type) {
	case string:
		return StringToBytes(v)
	case []byte:
		return v
	}
	// Named types: fall back to a conversion, which copies for strings.
	return []byte(h)
}
