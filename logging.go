package squirreljson

import (
	"log/slog"
)

// Logger is the structured logger squirreljson uses for the handful of
// operationally-interesting events around scanning: never for the scan
// itself (Scan is pure and returns errors, it does not log), but for the
// call sites in this package that treat a scan failure as noteworthy, such
// as IngestLine below. Defaults to slog.Default(); callers embedding this
// package in a larger service should call SetLogger once at startup to
// route these records into their own handler.
var Logger *slog.Logger = slog.Default()

// SetLogger replaces the package-level logger used by IngestLine and
// friends.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	Logger = l
}

// IngestLine scans one line of a newline-delimited log stream (a single
// minified JSON object per line, the storage engine's on-disk record
// format) and logs a warning, rather than returning an error, for the
// common operational case where a caller wants to skip malformed lines
// instead of aborting an entire ingest batch over one bad record.
func IngestLine(line []byte, lineNumber int) (*Document, bool) {
	doc, err := Scan(line)
	if err != nil {
		Logger.Warn("squirreljson: skipping unscannable line",
			slog.Int("line", lineNumber),
			slog.Any("error", err),
		)
		return nil, false
	}
	return doc, true
}
