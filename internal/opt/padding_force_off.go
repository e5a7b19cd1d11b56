//go:build taskwake_disable_padding

package opt

// CellPad_ is empty.
// Padding is force-disabled via the taskwake_disable_padding build tag.
// Use: go build -tags=taskwake_disable_padding
type CellPad_ struct{}
