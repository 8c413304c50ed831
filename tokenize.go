package bb

import "strings"

// Tokenize splits an expanded line on the ASCII space. There is no quoting
// or escaping and runs of spaces are not collapsed, so "a  b" yields
// ["a", "", "b"]. An argument containing a space cannot be expressed.
// The empty line yields no tokens.
func Tokenize(line string) []string {
	if line == "" {
		return []string{}
	}
	return strings.Split(line, " ")
}
