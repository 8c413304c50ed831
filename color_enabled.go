//go:build !bb_nocolor

package bb

const colorsBuiltIn = true

// colorBuildFlags are passed to the compiler on rebuild so the fresh
// binary keeps the colour setting of the current one.
var colorBuildFlags []string
