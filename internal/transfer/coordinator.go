// Package transfer copies track files onto the destination with skip
// detection and periodic checkpointing.
package transfer

import (
	"fmt"
	"os"
	"path/filepath"

	"cratesync/internal/fileutil"
)

// Coordinator performs idempotent copies. After every CheckpointEvery
// successful copies it invokes Checkpoint, so an interrupted run repeats at
// most one batch of work.
type Coordinator struct {
	// CheckpointEvery is the copy count between checkpoint calls. Zero or
	// negative disables checkpointing.
	CheckpointEvery int
	// Checkpoint persists progress mid-run. May be nil.
	Checkpoint func() error

	copiesSinceCheckpoint int
	bytesCopied           int64
}

// CopyIfNeeded copies src to dst unless dst already exists with the same
// size. It reports whether a copy happened. The destination directory is
// created as needed and the write is atomic, so dst is never left partial.
func (c *Coordinator) CopyIfNeeded(src, dst string) (bool, error) {
	if fileutil.SameSize(src, dst) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return false, fmt.Errorf("create destination directory: %w", err)
	}
	written, err := fileutil.CopyFileAtomic(src, dst)
	if err != nil {
		return false, fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	c.bytesCopied += written

	c.copiesSinceCheckpoint++
	if c.Checkpoint != nil && c.CheckpointEvery > 0 && c.copiesSinceCheckpoint >= c.CheckpointEvery {
		c.copiesSinceCheckpoint = 0
		if err := c.Checkpoint(); err != nil {
			return true, fmt.Errorf("checkpoint after copy: %w", err)
		}
	}
	return true, nil
}

// BytesCopied returns the total bytes written so far.
func (c *Coordinator) BytesCopied() int64 { return c.bytesCopied }
