package squirreljson

import "fmt"

// Cause distinguishes why a scan failed.
type Cause uint8

const (
	// CauseTruncated means the input ended while inside a string, or with
	// a non-empty frame stack.
	CauseTruncated Cause = iota
	// CauseStructural means a bracket mismatch occurred, or a value was
	// found where a key was required, or vice versa.
	CauseStructural
	// CauseEmpty means the input was zero-length, or its first
	// non-padding byte was not '{' or '['.
	CauseEmpty
)

func (c Cause) String() string {
	switch c {
	case CauseTruncated:
		return "truncated"
	case CauseStructural:
		return "structural"
	case CauseEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// ScanError is returned by Scan when the input cannot be turned into a
// tape. There is never a partial tape alongside a ScanError: scanning
// either fully succeeds or fails.
type ScanError struct {
	Cause  Cause
	Offset int // best-effort byte offset where the failure was detected
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("squirreljson: scan failed at offset %d: %s", e.Offset, e.Cause)
}

// Is reports whether target is one of the sentinel Err* values for this
// error's Cause, so callers can write errors.Is(err, ErrStructural).
func (e *ScanError) Is(target error) bool {
	sentinel, ok := target.(*ScanError)
	if !ok {
		return false
	}
	return sentinel.Cause == e.Cause && sentinel.Offset == -1
}

// Sentinel errors for use with errors.Is. Their Offset is always -1 and is
// never meaningful on its own; use the Offset field of the returned
// *ScanError for the actual failure location.
var (
	ErrTruncated  = &ScanError{Cause: CauseTruncated, Offset: -1}
	ErrStructural = &ScanError{Cause: CauseStructural, Offset: -1}
	ErrEmpty      = &ScanError{Cause: CauseEmpty, Offset: -1}
)

func newScanError(cause Cause, offset int) *ScanError {
	return &ScanError{Cause: cause, Offset: offset}
}
