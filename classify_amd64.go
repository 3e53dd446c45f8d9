//go:build amd64 && !noasm

package squirreljson

import "github.com/klauspost/cpuid/v2"

// On amd64, an AVX2-width classifier is selected when the host CPU
// advertises AVX2 support. The "AVX2-width" back-end is swarClassifyBlock,
// which processes the block in 8-byte SWAR lanes rather than a true
// 32-byte vector register, but is required to (and does) produce
// byte-identical output to the scalar fallback.
func init() {
	if cpuid.CPU.Supports(cpuid.AVX2) {
		classifyBlock = swarClassifyBlock
		backendName = "avx2"
		return
	}
	classifyBlock = scalarClassifyBlock
	backendName = "scalar"
}
