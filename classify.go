package squirreljson

// blockWidth is the number of input bytes classified together in one
// pass. It is the same for every back-end: 32 bytes, matching an AVX2 YMM
// register or a pair of 128-bit NEON registers. The scalar fallback
// processes the same 32-byte window one byte at a time so all three
// back-ends share one block-shaped interface.
const blockWidth = 32

// blockMasks is the result of classifying one blockWidth-sized window of
// input. Bit i of each mask describes byte i of the window.
type blockMasks struct {
	structRaw uint32 // one of { } [ ] , : , not yet excluding in-string bytes
	quote     uint32 // unescaped-or-escaped '"' -- resolved later by stringmask.go
	backslash uint32 // '\'
}

// classifyFunc classifies one blockWidth-byte window. Callers are
// responsible for padding the final partial window of the input with
// zero bytes, which every classifyFunc treats as non-special.
type classifyFunc func(block []byte) blockMasks

// classifyBlock is selected once, at package init, by the build-tag and
// cpu-feature dispatch in classify_amd64.go / classify_arm64.go /
// classify_generic.go. It never changes after init.
var classifyBlock classifyFunc

// backendName identifies which classifyBlock implementation was selected,
// for diagnostics and for the differential tests that check the SIMD-style
// and scalar back-ends agree.
var backendName string

// BackendName reports which block classifier back-end this build and host
// selected: "avx2", "neon", or "scalar".
func BackendName() string {
	return backendName
}
