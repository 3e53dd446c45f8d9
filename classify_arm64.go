//go:build arm64 && !noasm

package squirreljson

import "golang.org/x/sys/cpu"

// On arm64, NEON (ASIMD) is part of the baseline ISA, but the capability
// check is kept explicit -- mirroring the amd64 dispatch in
// classify_amd64.go -- both for symmetry with that dispatch and so the
// scalar fallback remains reachable and testable on an arm64 host by
// forcing cpu.ARM64.HasASIMD false in a test build.
func init() {
	if cpu.ARM64.HasASIMD {
		classifyBlock = swarClassifyBlock
		backendName = "neon"
		return
	}
	classifyBlock = scalarClassifyBlock
	backendName = "scalar"
}
