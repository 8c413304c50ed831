package bb

import (
	"fmt"
	"regexp"
	"strings"
)

// %% or %[flags][width][.precision]verb
var placeholderRe = regexp.MustCompile(`%(?:%|[-+# 0]*\d*(?:\.\d*)?[a-zA-Z])`)

type part struct {
	literal   string
	directive string // empty for literals
}

// Template is a parsed command line: literal text interleaved with
// placeholders, each filled by exactly one value at expansion time.
type Template struct {
	source string
	parts  []part
}

// ParseTemplate splits s into literal and placeholder parts. A percent
// sign that does not start a directive is kept as literal text.
func ParseTemplate(s string) Template {
	t := Template{source: s}
	last := 0
	for _, loc := range placeholderRe.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			t.addLiteral(s[last:loc[0]])
		}
		m := s[loc[0]:loc[1]]
		if m == "%%" {
			t.addLiteral("%")
		} else {
			t.parts = append(t.parts, part{directive: m})
		}
		last = loc[1]
	}
	if last < len(s) {
		t.addLiteral(s[last:])
	}
	return t
}

func (t *Template) addLiteral(s string) {
	if n := len(t.parts); n > 0 && t.parts[n-1].directive == "" {
		t.parts[n-1].literal += s
		return
	}
	t.parts = append(t.parts, part{literal: s})
}

// Placeholders returns how many values Expand expects.
func (t Template) Placeholders() int {
	n := 0
	for _, p := range t.parts {
		if p.directive != "" {
			n++
		}
	}
	return n
}

func (t Template) String() string { return t.source }

// Expand substitutes values into the placeholders in order. The number of
// values must equal Placeholders. Whether a value suits its verb is the
// caller's responsibility; a mismatch renders the way fmt renders it.
func (t Template) Expand(values ...any) (string, error) {
	if n := t.Placeholders(); n != len(values) {
		return "", fmt.Errorf("%w: template %q has %d, got %d", ErrArity, t.source, n, len(values))
	}
	var b strings.Builder
	i := 0
	for _, p := range t.parts {
		if p.directive == "" {
			b.WriteString(p.literal)
			continue
		}
		b.WriteString(fmt.Sprintf(p.directive, values[i]))
		i++
	}
	return b.String(), nil
}
