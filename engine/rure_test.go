//go:build rure

package engine

import "testing"

func TestRureCapturesRead(t *testing.T) {
	e, err := CompileRure[[]byte](`(\d+)x(\d+)`)
	if err != nil {
		t.Fatalf("CompileRure() error = %v", err)
	}

	locs := e.NewLocations()
	if locs.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", locs.Len())
	}

	start, end, ok := e.CapturesRead(locs, []byte("ab11x42"))
	if !ok || start != 2 || end != 7 {
		t.Fatalf("CapturesRead() = (%d, %d, %v), want (2, 7, true)", start, end, ok)
	}
	if s, e2, ok := locs.Get(2); !ok || s != 5 || e2 != 7 {
		t.Errorf("Get(2) = (%d, %d, %v), want (5, 7, true)", s, e2, ok)
	}
	if _, _, ok := locs.Get(3); ok {
		t.Error("Get(3) should be out of range")
	}
}
