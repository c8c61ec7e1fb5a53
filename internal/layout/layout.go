// Package layout maps source files and collection hierarchies onto a
// destination volume's directory structure.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cratesync/internal/config"
	"cratesync/internal/textutil"
)

// Layout is the resolved directory structure of one destination.
type Layout struct {
	Root         string
	MusicDir     string
	PlaylistsDir string
	StatePath    string
	LockPath     string

	basePaths []string
}

// New builds the layout for a destination root from the export config.
// Base paths are expanded and cleaned; longer paths are tried first so a
// nested base wins over its ancestor.
func New(root string, cfg config.Export) *Layout {
	bases := make([]string, 0, len(cfg.BasePaths))
	for _, base := range cfg.BasePaths {
		expanded, err := config.ExpandPath(base)
		if err != nil || expanded == "" || expanded == "." {
			continue
		}
		bases = append(bases, expanded)
	}
	for i := 1; i < len(bases); i++ {
		for j := i; j > 0 && len(bases[j]) > len(bases[j-1]); j-- {
			bases[j], bases[j-1] = bases[j-1], bases[j]
		}
	}

	root = filepath.Clean(root)
	return &Layout{
		Root:         root,
		MusicDir:     filepath.Join(root, cfg.MusicDir),
		PlaylistsDir: filepath.Join(root, cfg.PlaylistsDir),
		StatePath:    filepath.Join(root, cfg.StateFile),
		LockPath:     filepath.Join(root, cfg.LockFile),
		basePaths:    bases,
	}
}

// EnsureRoots creates the music and playlist directories.
func (l *Layout) EnsureRoots() error {
	for _, dir := range []string{l.MusicDir, l.PlaylistsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// DestinationFor maps a source file into the music tree. Files under a
// configured base path keep their relative structure; anything else lands in
// a per-volume fallback directory so nothing is silently dropped.
func (l *Layout) DestinationFor(srcPath string) string {
	src := filepath.Clean(srcPath)
	for _, base := range l.basePaths {
		rel, err := filepath.Rel(base, src)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		return filepath.Join(l.MusicDir, rel)
	}
	volume := textutil.SanitizeFileName(volumeOf(src))
	return filepath.Join(l.MusicDir, volume, textutil.SanitizeFileName(filepath.Base(src)))
}

// volumeOf names the mount a path lives on: the component after a mount
// prefix, otherwise the first path component.
func volumeOf(path string) string {
	for _, prefix := range []string{"/Volumes/", "/media/", "/run/media/", "/mnt/"} {
		if rest, ok := strings.CutPrefix(path, prefix); ok {
			if idx := strings.IndexByte(rest, '/'); idx > 0 {
				return rest[:idx]
			}
			if rest != "" {
				return rest
			}
		}
	}
	trimmed := strings.TrimPrefix(path, "/")
	if idx := strings.IndexByte(trimmed, '/'); idx > 0 {
		return trimmed[:idx]
	}
	return "Other"
}

// ManifestDir maps collection hierarchy segments (the playlist's ancestor
// folders) into the playlist tree, sanitizing each segment.
func (l *Layout) ManifestDir(segments []string) string {
	dir := l.PlaylistsDir
	for _, segment := range segments {
		dir = filepath.Join(dir, textutil.SanitizeFileName(segment))
	}
	return dir
}
