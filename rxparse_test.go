package rxparse

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/coregx/coregex"
)

// TestCompile tests compilation of source patterns for both haystack kinds
func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		wantErr    bool
		wantGroups int
	}{
		{"simple literal", "hello", false, 1},
		{"digits", `^\d+`, false, 1},
		{"two groups", `^(\d+)x(\d+)`, false, 3},
		{"named group", `^(?P<n>\w+)`, false, 2},
		{"invalid", "(", true, 0},
		{"invalid class", "[invalid", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Compile[string](tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Compile[string]() error = %v, wantErr %v", err, tt.wantErr)
			}
			raw, rawErr := Compile[[]byte](tt.pattern)
			if (rawErr != nil) != tt.wantErr {
				t.Fatalf("Compile[[]byte]() error = %v, wantErr %v", rawErr, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if text.NumGroups() != tt.wantGroups || raw.NumGroups() != tt.wantGroups {
				t.Errorf("NumGroups() = %d/%d, want %d", text.NumGroups(), raw.NumGroups(), tt.wantGroups)
			}
			if text.String() != tt.pattern {
				t.Errorf("String() = %q, want %q", text.String(), tt.pattern)
			}
		})
	}
}

// TestCompileError verifies the error type and that the engine diagnostic
// is preserved
func TestCompileError(t *testing.T) {
	_, err := Compile[string]("[invalid")
	if err == nil {
		t.Fatal("Compile() expected error, got nil")
	}

	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("Compile() error type = %T, want *CompileError", err)
	}
	if ce.Pattern != "[invalid" {
		t.Errorf("CompileError.Pattern = %q", ce.Pattern)
	}
	if ce.Unwrap() == nil {
		t.Fatal("CompileError.Unwrap() = nil")
	}

	// The diagnostic should match what the stdlib parser reports.
	_, stdErr := regexp.Compile("[invalid")
	if !strings.Contains(err.Error(), "missing closing ]") || !strings.Contains(stdErr.Error(), "missing closing ]") {
		t.Errorf("error %q does not carry the syntax diagnostic", err)
	}
}

// TestMustCompile tests panic on invalid pattern
func TestMustCompile(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustCompile() did not panic on invalid pattern")
		}
	}()

	MustCompile[string]("(") // Should panic
}

// TestMustCompilePanicFormat verifies the panic message names the pattern
func TestMustCompilePanicFormat(t *testing.T) {
	var msg string
	func() {
		defer func() {
			if r := recover(); r != nil {
				msg, _ = r.(string)
			}
		}()
		Regex[[]byte]("[invalid")
	}()

	wantPrefix := "rxparse: Compile(`[invalid`): "
	if !strings.HasPrefix(msg, wantPrefix) {
		t.Errorf("panic = %q, want prefix %q", msg, wantPrefix)
	}
	if strings.Contains(msg, "rxparse: compile") {
		t.Errorf("panic %q should not repeat the CompileError wrapper", msg)
	}
}

// TestFallibleConstructors checks NewRegex and NewCapture never panic
func TestFallibleConstructors(t *testing.T) {
	if _, err := NewRegex[string]("("); err == nil {
		t.Error("NewRegex() expected error")
	}
	if _, err := NewCapture[[]byte]("("); err == nil {
		t.Error("NewCapture() expected error")
	}

	p, err := NewRegex[string](`^\d+`)
	if err != nil || p == nil {
		t.Fatalf("NewRegex() = %v, %v", p, err)
	}
	if p.Matcher().String() != `^\d+` {
		t.Errorf("Matcher().String() = %q", p.Matcher().String())
	}
}

// TestCompilePrecompiled tests the precompiled pattern forms
func TestCompilePrecompiled(t *testing.T) {
	t.Run("coregex", func(t *testing.T) {
		m, err := Compile[string](coregex.MustCompile(`^(\w+)`))
		if err != nil {
			t.Fatalf("Compile() error = %v", err)
		}
		if m.NumGroups() != 2 || m.String() != `^(\w+)` {
			t.Errorf("NumGroups() = %d, String() = %q", m.NumGroups(), m.String())
		}
	})

	t.Run("stdlib", func(t *testing.T) {
		m, err := Compile[[]byte](regexp.MustCompile(`^(?P<a>a)(b)?`))
		if err != nil {
			t.Fatalf("Compile() error = %v", err)
		}
		if m.NumGroups() != 3 {
			t.Errorf("NumGroups() = %d, want 3", m.NumGroups())
		}
		if names := m.SubexpNames(); len(names) != 3 || names[1] != "a" {
			t.Errorf("SubexpNames() = %q", names)
		}
	})

	t.Run("nil", func(t *testing.T) {
		var re *coregex.Regexp
		if _, err := Compile[string](re); err == nil {
			t.Error("Compile(nil) expected error")
		}
		var std *regexp.Regexp
		if _, err := Compile[string](std); err == nil {
			t.Error("Compile(nil stdlib) expected error")
		}
	})
}

// TestCompileWithConfig tests custom engine configuration
func TestCompileWithConfig(t *testing.T) {
	config := DefaultConfig()
	config.EnableDFA = false

	m, err := CompileWithConfig[[]byte](`^(a|b|c)*d`, config)
	if err != nil {
		t.Fatalf("CompileWithConfig() error = %v", err)
	}
	if outcome, end := m.Classify([]byte("abcd!"), false); outcome != Match || end != 4 {
		t.Errorf("Classify() = (%v, %d), want (Match, 4)", outcome, end)
	}

	if _, err := CompileWithConfig[string]("(", config); err == nil {
		t.Error("CompileWithConfig() expected error")
	}
}

// TestCompileLiterals tests the literal-set matcher
func TestCompileLiterals(t *testing.T) {
	m, err := CompileLiterals[string]("let", "var")
	if err != nil {
		t.Fatalf("CompileLiterals() error = %v", err)
	}
	if m.NumGroups() != 1 {
		t.Errorf("NumGroups() = %d, want 1", m.NumGroups())
	}
	if m.SubexpNames() != nil {
		t.Errorf("SubexpNames() = %q, want nil", m.SubexpNames())
	}

	_, err = CompileLiterals[string]()
	var ce *CompileError
	if !errors.As(err, &ce) || !errors.Is(err, ErrEmptyLiteral) {
		t.Errorf("CompileLiterals() error = %v, want *CompileError wrapping ErrEmptyLiteral", err)
	}
}
