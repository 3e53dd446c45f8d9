//go:build !squirreljson_checked

package squirreljson

// isCheckedBuild is false unless the squirreljson_checked build tag is
// set, in which case this file is excluded from the build and
// checked_forced.go defines the constant as true instead.
const isCheckedBuild = false
