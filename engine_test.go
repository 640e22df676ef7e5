package webopt

import (
	"errors"
	"strings"
	"testing"
)

func TestNewEngine(t *testing.T) {
	tests := []struct {
		name    EngineName
		want    EngineName
		wantErr error
	}{
		{"", EnginePattern, nil},
		{EnginePattern, EnginePattern, nil},
		{EngineParser, EngineParser, nil},
		{"closure", "", ErrUnknownEngine},
	}

	for _, tt := range tests {
		e, err := NewEngine(tt.name)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("NewEngine(%q) error = %v, want %v", tt.name, err, tt.wantErr)
			continue
		}
		if err == nil && e.Name() != tt.want {
			t.Errorf("NewEngine(%q) = %s, want %s", tt.name, e.Name(), tt.want)
		}
	}
}

func TestPatternEngineMatchesMinifiers(t *testing.T) {
	src := "a = 1; // note\nb = 2;"
	got, err := PatternEngine{}.Minify(KindScript, src)
	if err != nil {
		t.Fatalf("Minify failed: %v", err)
	}
	if got != MinifyScript(src) {
		t.Errorf("Pattern engine returned %q, want %q", got, MinifyScript(src))
	}

	got, _ = PatternEngine{}.Minify(KindOpaque, src)
	if got != src {
		t.Errorf("Opaque content changed: %q", got)
	}
}

func TestParserEngine(t *testing.T) {
	e := NewParserEngine()

	tests := []struct {
		kind     ContentKind
		src      string
		contains string
		absent   string
	}{
		{KindStylesheet, "body {\n  color : red;\n}\n", "color:red", " "},
		{KindMarkup, "<div>\n  <!-- c -->\n  <p>Hi</p>\n</div>\n", "<p>Hi", "<!--"},
		// Parameters may be renamed, so only the structure is checked.
		{KindScript, "function add ( a , b ) {\n  // sum\n  return a + b;\n}\n", "{return ", "sum"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, err := e.Minify(tt.kind, tt.src)
			if err != nil {
				t.Fatalf("Minify failed: %v", err)
			}
			if len(got) >= len(tt.src) {
				t.Errorf("Expected smaller output, got %q", got)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("Expected %q in %q", tt.contains, got)
			}
			if strings.Contains(got, tt.absent) {
				t.Errorf("Did not expect %q in %q", tt.absent, got)
			}
		})
	}
}

func TestParserEngineKeepsStringContent(t *testing.T) {
	src := `const s = "a // b";`
	got, err := NewParserEngine().Minify(KindScript, src)
	if err != nil {
		t.Fatalf("Minify failed: %v", err)
	}
	if !strings.Contains(got, `a // b`) {
		t.Errorf("Parser engine should not cut inside strings, got %q", got)
	}
}
