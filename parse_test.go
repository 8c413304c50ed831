package bb

import (
	"errors"
	"strings"
	"testing"
)

// ===== DEFERRED FORMATTER TESTS =====

func TestParseTemplatePlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		template string
		expected int
	}{
		{"No placeholders", "cc -O2 main.c", 0},
		{"String placeholders", "cp %s %s", 2},
		{"Mixed verbs", "head -n %d %s %v", 3},
		{"Flags width and precision", "printf %-8s %05d %.2f", 3},
		{"Escaped percent", "echo 100%%", 0},
		{"Trailing percent", "echo 100%", 0},
		{"Empty template", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTemplate(tt.template).Placeholders(); got != tt.expected {
				t.Errorf("Placeholders() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestTemplateExpand(t *testing.T) {
	tests := []struct {
		name     string
		template string
		values   []any
		expected string
	}{
		{
			name:     "Literal only",
			template: "cc -O2 main.c",
			expected: "cc -O2 main.c",
		},
		{
			name:     "Strings in order",
			template: "cp %s %s",
			values:   []any{"a.txt", "b.txt"},
			expected: "cp a.txt b.txt",
		},
		{
			name:     "Numbers and padding",
			template: "seq %03d %d",
			values:   []any{7, 12},
			expected: "seq 007 12",
		},
		{
			name:     "Placeholder inside a token",
			template: "cc -o build/%s.o -DVERSION=%d",
			values:   []any{"main", 3},
			expected: "cc -o build/main.o -DVERSION=3",
		},
		{
			name:     "Escaped percent stays single",
			template: "echo %d%%",
			values:   []any{50},
			expected: "echo 50%",
		},
		{
			name:     "Lone percent is literal",
			template: "expr 7 % / 2",
			expected: "expr 7 % / 2",
		},
		{
			name:     "Long values are never truncated",
			template: "echo %s",
			values:   []any{strings.Repeat("x", 70000)},
			expected: "echo " + strings.Repeat("x", 70000),
		},
		{
			name:     "Type mismatch renders like fmt",
			template: "echo %d",
			values:   []any{"text"},
			expected: "echo %!d(string=text)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseTemplate(tt.template).Expand(tt.values...)
			if err != nil {
				t.Fatalf("Expand() unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("Expand() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestTemplateExpandArity(t *testing.T) {
	tmpl := ParseTemplate("cp %s %s")
	for _, values := range [][]any{nil, {"a"}, {"a", "b", "c"}} {
		_, err := tmpl.Expand(values...)
		if !errors.Is(err, ErrArity) {
			t.Errorf("Expand(%v) error = %v, want ErrArity", values, err)
		}
	}
}

func TestTemplateString(t *testing.T) {
	if got := ParseTemplate("cc %s").String(); got != "cc %s" {
		t.Errorf("String() = %q", got)
	}
}

func BenchmarkTemplateExpand(b *testing.B) {
	tmpl := ParseTemplate("cc -Wall -O2 -c %s -o %s")
	for i := 0; i < b.N; i++ {
		_, _ = tmpl.Expand("main.c", "main.o")
	}
}
