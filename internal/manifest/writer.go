// Package manifest renders playlist files in extended M3U format with paths
// relative to the manifest location, so they survive the volume being
// remounted anywhere.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cratesync/internal/fileutil"
	"cratesync/internal/textutil"
)

// unknownDuration is the EXTINF sentinel for tracks whose length is not read.
const unknownDuration = -1

// Entry is one track line in a manifest.
type Entry struct {
	Title  string
	Artist string
	// Path is the absolute destination path of the copied track.
	Path string
}

// Writer renders manifests. The zero value is not usable; set Ext.
type Writer struct {
	// Ext is the manifest file extension without the dot, e.g. "m3u8".
	Ext string
	// Clock stamps the generation time; defaults to time.Now.
	Clock func() time.Time
}

// Write renders the manifest for a collection into dir and returns the file
// path. hierarchy is the collection's folder path from the top level down to
// and including its own name. Entries keep their given order; their paths
// are rewritten relative to dir. The write is atomic.
func (w *Writer) Write(dir, name string, hierarchy []string, entries []Entry) (string, error) {
	now := time.Now
	if w.Clock != nil {
		now = w.Clock
	}

	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	fmt.Fprintf(&b, "# Playlist: %s\n", name)
	fmt.Fprintf(&b, "# Path: %s\n", strings.Join(hierarchy, " / "))
	fmt.Fprintf(&b, "# Generated: %s\n", now().UTC().Format(time.RFC3339))

	for _, entry := range entries {
		rel, err := filepath.Rel(dir, entry.Path)
		if err != nil {
			rel = entry.Path
		}
		fmt.Fprintf(&b, "#EXTINF:%d,%s - %s\n", unknownDuration, entry.Artist, entry.Title)
		b.WriteString(filepath.ToSlash(rel))
		b.WriteByte('\n')
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create manifest directory: %w", err)
	}
	path := filepath.Join(dir, textutil.SanitizeFileName(name)+"."+w.Ext)
	if err := fileutil.WriteFileAtomic(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write manifest %s: %w", path, err)
	}
	return path, nil
}
