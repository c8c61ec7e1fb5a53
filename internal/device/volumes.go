// Package device discovers candidate destination volumes and watches for
// removable storage coming and going.
package device

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sys/unix"
)

// Volume is a mounted filesystem that could serve as an export destination.
type Volume struct {
	Name       string
	Path       string
	FreeBytes  uint64
	TotalBytes uint64
}

// defaultRoots returns the directories removable media mounts under,
// covering macOS and the common Linux automount layouts.
func defaultRoots() []string {
	roots := []string{"/Volumes", "/mnt", "/media"}
	if entries, err := os.ReadDir("/run/media"); err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				roots = append(roots, filepath.Join("/run/media", entry.Name()))
			}
		}
	}
	return roots
}

// List enumerates mounted volumes under the given roots, or under the
// platform defaults when none are given. Entries that cannot be statted are
// silently skipped.
func List(roots ...string) []Volume {
	if len(roots) == 0 {
		roots = defaultRoots()
	}

	var volumes []Volume
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			path := filepath.Join(root, entry.Name())
			var stat unix.Statfs_t
			if err := unix.Statfs(path, &stat); err != nil {
				continue
			}
			volumes = append(volumes, Volume{
				Name:       entry.Name(),
				Path:       path,
				FreeBytes:  stat.Bavail * uint64(stat.Bsize),
				TotalBytes: stat.Blocks * uint64(stat.Bsize),
			})
		}
	}
	sort.Slice(volumes, func(i, j int) bool { return volumes[i].Path < volumes[j].Path })
	return volumes
}
