//go:build taskwake_enable_padding

package opt

// CellPad_ fills the rest of the cache line holding a shared task cell.
// Padding is force-enabled via the taskwake_enable_padding build tag.
// Use: go build -tags=taskwake_enable_padding
type CellPad_ [(CacheLineSize_ - cellSize%CacheLineSize_) % CacheLineSize_]byte

const cellSize = 16
