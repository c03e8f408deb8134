package rxparse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coregx/rxparse/stream"
)

func parseCaptures[S Haystack](t *testing.T, pattern string, input S) *Captures[S] {
	t.Helper()
	caps, err := Capture[S](pattern).ParseNext(stream.New(input))
	if err != nil {
		t.Fatalf("ParseNext(%q) error = %v", input, err)
	}
	return caps
}

// TestCapturesGet tests group access and its two distinct failure modes
func TestCapturesGet(t *testing.T) {
	caps := parseCaptures(t, `^(a)|^(b)`, "b!")

	if caps.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", caps.Len())
	}

	tests := []struct {
		name    string
		index   int
		want    string
		wantErr error
	}{
		{"whole match", 0, "b", nil},
		{"not participating", 1, "", ErrGroupNotMatched},
		{"participating", 2, "b", nil},
		{"out of range", 3, "", ErrGroupOutOfRange},
		{"negative", -1, "", ErrGroupOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := caps.Get(tt.index)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Get(%d) error = %v, want %v", tt.index, err, tt.wantErr)
				}
				var ge *GroupError
				if !errors.As(err, &ge) || ge.Index != tt.index {
					t.Errorf("Get(%d) error = %#v, want *GroupError for the index", tt.index, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get(%d) error = %v", tt.index, err)
			}
			if got != tt.want {
				t.Errorf("Get(%d) = %q, want %q", tt.index, got, tt.want)
			}
		})
	}
}

// TestCapturesNotMatchedVsOutOfRange ensures the two errors never alias
func TestCapturesNotMatchedVsOutOfRange(t *testing.T) {
	caps := parseCaptures(t, `^(x)?y`, "y")

	_, notMatched := caps.Get(1)
	_, outOfRange := caps.Get(2)
	if errors.Is(notMatched, ErrGroupOutOfRange) || errors.Is(outOfRange, ErrGroupNotMatched) {
		t.Errorf("errors overlap: %v / %v", notMatched, outOfRange)
	}
}

// TestCapturesIndexPanics tests the panicking accessor
func TestCapturesIndexPanics(t *testing.T) {
	caps := parseCaptures(t, `^(x)?y`, "y")

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrGroupNotMatched) {
			t.Errorf("Index(1) panic = %v, want ErrGroupNotMatched", r)
		}
	}()
	caps.Index(1)
}

// TestCapturesGroupZeroEqualsMatch checks group 0 against the consumed span
func TestCapturesGroupZeroEqualsMatch(t *testing.T) {
	patterns := []string{`^\w+`, `^(\w)(\w)`, `^a*`, `^(?:ab)+(c)?`}
	inputs := []string{"hello world", "ab", "ababcx", "", "aaa"}

	for _, pattern := range patterns {
		p := Capture[string](pattern)
		for _, input := range inputs {
			in := stream.New(input)
			caps, err := p.ParseNext(in)
			if err != nil {
				continue
			}
			consumed := input[:in.Offset()]
			if caps.Index(0) != consumed || caps.Match() != consumed {
				t.Errorf("%s on %q: group 0 = %q, consumed %q", pattern, input, caps.Index(0), consumed)
			}
		}
	}
}

// TestCapturesName tests named group lookup
func TestCapturesName(t *testing.T) {
	caps := parseCaptures(t, `^(?P<year>\d{4})-(?P<month>\d{2})(?:-(?P<day>\d{2}))?`, []byte("2024-06 rest"))

	year, err := caps.Name("year")
	if err != nil || string(year) != "2024" {
		t.Errorf("Name(year) = %q, %v", year, err)
	}

	_, err = caps.Name("day")
	var ge *GroupError
	if !errors.Is(err, ErrGroupNotMatched) || !errors.As(err, &ge) || ge.Name != "day" || ge.Index != 3 {
		t.Errorf("Name(day) error = %v, want not matched for group 3", err)
	}

	if _, err := caps.Name("hour"); !errors.Is(err, ErrGroupUnknown) {
		t.Errorf("Name(hour) error = %v, want ErrGroupUnknown", err)
	}
	if _, err := caps.Name(""); !errors.Is(err, ErrGroupUnknown) {
		t.Errorf("Name(\"\") error = %v, want ErrGroupUnknown", err)
	}
}

// TestCapturesSpanAndGroups tests bounds relative to the match
func TestCapturesSpanAndGroups(t *testing.T) {
	caps := parseCaptures(t, `^(\d+)(x)?(\d+)?`, []byte("12x;"))

	if start, end, ok := caps.Span(2); !ok || start != 2 || end != 3 {
		t.Errorf("Span(2) = (%d, %d, %v), want (2, 3, true)", start, end, ok)
	}
	if _, _, ok := caps.Span(3); ok {
		t.Error("Span(3) should not participate")
	}

	want := [][]byte{[]byte("12x"), []byte("12"), []byte("x"), nil}
	if diff := cmp.Diff(want, caps.Groups()); diff != "" {
		t.Errorf("Groups() mismatch (-want +got):\n%s", diff)
	}
}

// TestCapturesIndependentOfStream checks the result survives later feeds
func TestCapturesIndependentOfStream(t *testing.T) {
	in := stream.NewPartial([]byte("ab1"))
	caps, err := Capture[[]byte](`^([a-z]+)`).ParseNext(in)
	if err != nil {
		t.Fatalf("ParseNext() error = %v", err)
	}

	in.Feed([]byte("zzzz"))
	in.NextSlice(in.Len())

	if string(caps.Index(1)) != "ab" {
		t.Errorf("Index(1) = %q after stream mutation, want %q", caps.Index(1), "ab")
	}
}

// TestGroupErrorMessage tests error formatting
func TestGroupErrorMessage(t *testing.T) {
	tests := []struct {
		err  *GroupError
		want string
	}{
		{&GroupError{Index: 4, Err: ErrGroupOutOfRange}, "rxparse: group 4: capture group index out of range"},
		{&GroupError{Index: -1, Name: "x", Err: ErrGroupUnknown}, `rxparse: group "x": unknown capture group name`},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

// TestCapturesOptionalGroups checks unset optional groups on both haystack
// kinds, including a group that would otherwise read as an empty match
func TestCapturesOptionalGroups(t *testing.T) {
	const pattern = `^(\d+)(x)?(\d+)?`

	tests := []struct {
		input string
		want  []string
		unset []int
	}{
		{"12x;", []string{"12x", "12", "x", ""}, []int{3}},
		{"12;", []string{"12", "12", "", ""}, []int{2, 3}},
		{"12x3;", []string{"12x3", "12", "x", "3"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			text := parseCaptures(t, pattern, tt.input)
			if diff := cmp.Diff(tt.want, text.Groups()); diff != "" {
				t.Errorf("text Groups() mismatch (-want +got):\n%s", diff)
			}

			raw := parseCaptures(t, pattern, []byte(tt.input))
			for i, w := range tt.want {
				if g := raw.Groups()[i]; string(g) != w {
					t.Errorf("bytes group %d = %q, want %q", i, g, w)
				}
			}

			for _, i := range tt.unset {
				if _, err := text.Get(i); !errors.Is(err, ErrGroupNotMatched) {
					t.Errorf("text Get(%d) error = %v, want ErrGroupNotMatched", i, err)
				}
				if _, err := raw.Get(i); !errors.Is(err, ErrGroupNotMatched) {
					t.Errorf("bytes Get(%d) error = %v, want ErrGroupNotMatched", i, err)
				}
				if _, _, ok := raw.Span(i); ok {
					t.Errorf("bytes Span(%d) reported participation", i)
				}
			}
		})
	}
}

type staleLocations struct{}

func (staleLocations) Get(i int) (int, int, bool) {
	if i == 1 {
		return 3, 2, true
	}
	return 0, 3, true
}
func (staleLocations) Len() int { return 2 }

// TestCapturesRejectsImpossibleBounds guards group access against engines
// reporting bounds outside the match
func TestCapturesRejectsImpossibleBounds(t *testing.T) {
	caps := &Captures[string]{slice: "abc", locs: staleLocations{}}

	if _, err := caps.Get(1); !errors.Is(err, ErrGroupNotMatched) {
		t.Errorf("Get(1) error = %v, want ErrGroupNotMatched", err)
	}
	if diff := cmp.Diff([]string{"abc", ""}, caps.Groups()); diff != "" {
		t.Errorf("Groups() mismatch (-want +got):\n%s", diff)
	}
}
