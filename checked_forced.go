//go:build squirreljson_checked

package squirreljson

// isCheckedBuild is true under the squirreljson_checked build tag, forcing
// every Scan call to use the checked rawCursor. Intended for debug and
// fuzz builds.
const isCheckedBuild = true
