//go:build (amd64 || 386 || arm || mips || mipsle || wasm) && !taskwake_disable_padding && !taskwake_enable_padding

package opt

// CellPad_ is empty: padding is disabled by default for
// - amd64
// - 32-bit architectures (386, arm, mips, mipsle, wasm)
type CellPad_ struct{}
