//go:build !(amd64 || 386 || arm || mips || mipsle || wasm) && !taskwake_disable_padding && !taskwake_enable_padding

package opt

// CellPad_ fills the rest of the cache line holding a shared task cell
// (a 32-bit reference count and a 64-bit task id, 16 bytes once aligned).
// Padding is automatically enabled for architectures that are NOT:
// - amd64 (x86_64): Hardware optimizations often make padding less critical
// - 32-bit architectures (386, arm, mips, mipsle, wasm): Smaller cache lines/memory constraints
//
// Enabled for: arm64, s390x, ppc64, ppc64le, riscv64, loong64, mips64, mips64le, etc.
type CellPad_ [(CacheLineSize_ - cellSize%CacheLineSize_) % CacheLineSize_]byte

const cellSize = 16
