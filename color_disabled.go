//go:build bb_nocolor

package bb

const colorsBuiltIn = false

var colorBuildFlags = []string{"-tags", "bb_nocolor"}
