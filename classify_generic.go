//go:build (!amd64 && !arm64) || noasm

package squirreljson

func init() {
	classifyBlock = scalarClassifyBlock
	backendName = "scalar"
}
