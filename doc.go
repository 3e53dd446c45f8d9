/*
Package squirreljson scans minified JSON objects into a flat tape of typed
byte offsets instead of a tree of values.

It exists to support sparse deserialization in a log/document storage
engine: a stored record is a single-line JSON object, and most queries only
ever touch a handful of its fields. Scanning the record once into a tape
lets the rest of the engine locate, skip, or decode individual fields in
O(1) per step instead of paying for a full parse up front.

The scanner makes one left-to-right pass over the input, classifying every
structural character, string boundary, and primitive into tape records. Two
block classifier back-ends exist -- a vectorized one for amd64 and arm64, and
a scalar fallback used everywhere else (and under the noasm build tag) -- and
they are required to produce byte-identical tapes for any input.

Scan never blocks and never re-enters: there is no I/O and no internal
concurrency. A Document is read-only once Scan returns, and may be shared
across goroutines; Scan itself requires exclusive access to its working
buffers, which the Document and DocumentPool types manage for callers who
scan many short records back to back.
*/
package squirreljson
