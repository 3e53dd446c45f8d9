package squirreljson

// ScanOptions carries the scanner's only runtime knobs. The classifier
// back-end is not one of them: it is fixed at package init by build tags
// and CPU feature detection. The squirreljson_checked build tag turns
// checked indexing on for every scan, whatever Checked says.
type ScanOptions struct {
	// SizeHint pre-sizes the tape's backing array from a caller-supplied
	// estimate of the document's record count, so a caller who knows
	// their schema ahead of time can avoid reallocation while the tape is
	// being built. Zero means "no hint."
	SizeHint int

	// CopyStrings, when true, makes ToExternalValueWithOptions copy each
	// string value's raw bytes out of the input buffer before decoding
	// them. The decoded values are Go strings, which never alias the input
	// buffer whether or not this is set.
	CopyStrings bool

	// Checked forces the checked rawCursor even in a build that would
	// otherwise use unchecked indexing. Scan always honors this; it is
	// how ScanChecked is implemented.
	Checked bool
}
