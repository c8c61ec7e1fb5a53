package layout_test

import (
	"os"
	"path/filepath"
	"testing"

	"cratesync/internal/config"
	"cratesync/internal/layout"
)

func exportConfig(bases ...string) config.Export {
	cfg := config.Default().Export
	cfg.BasePaths = bases
	return cfg
}

func TestNewResolvesRootPaths(t *testing.T) {
	root := t.TempDir()
	l := layout.New(root, exportConfig("/music"))

	if l.MusicDir != filepath.Join(root, "Music") {
		t.Fatalf("unexpected music dir %q", l.MusicDir)
	}
	if l.PlaylistsDir != filepath.Join(root, "Playlists") {
		t.Fatalf("unexpected playlists dir %q", l.PlaylistsDir)
	}
	if l.StatePath != filepath.Join(root, ".cratesync-state.json") {
		t.Fatalf("unexpected state path %q", l.StatePath)
	}
	if l.LockPath != filepath.Join(root, ".cratesync.lock") {
		t.Fatalf("unexpected lock path %q", l.LockPath)
	}
}

func TestEnsureRoots(t *testing.T) {
	root := t.TempDir()
	l := layout.New(root, exportConfig("/music"))
	if err := l.EnsureRoots(); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{l.MusicDir, l.PlaylistsDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory at %s: %v", dir, err)
		}
	}
}

func TestDestinationForMirrorsBasePath(t *testing.T) {
	root := t.TempDir()
	l := layout.New(root, exportConfig("/music"))

	got := l.DestinationFor("/music/house/deep/track.flac")
	want := filepath.Join(root, "Music", "house", "deep", "track.flac")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDestinationForPrefersLongestBase(t *testing.T) {
	root := t.TempDir()
	l := layout.New(root, exportConfig("/music", "/music/house"))

	got := l.DestinationFor("/music/house/track.flac")
	want := filepath.Join(root, "Music", "track.flac")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDestinationForFallbackVolume(t *testing.T) {
	root := t.TempDir()
	l := layout.New(root, exportConfig("/music"))

	got := l.DestinationFor("/Volumes/External SSD/crates/track.flac")
	want := filepath.Join(root, "Music", "External SSD", "track.flac")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	got = l.DestinationFor("/home/dj/other/track.flac")
	want = filepath.Join(root, "Music", "home", "track.flac")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDestinationForRejectsParentEscape(t *testing.T) {
	root := t.TempDir()
	l := layout.New(root, exportConfig("/music/house"))

	// A sibling of the base path must not match via "..".
	got := l.DestinationFor("/music/techno/track.flac")
	want := filepath.Join(root, "Music", "music", "track.flac")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestManifestDirSanitizesSegments(t *testing.T) {
	root := t.TempDir()
	l := layout.New(root, exportConfig("/music"))

	got := l.ManifestDir([]string{"Sets", "A/B: Live"})
	want := filepath.Join(root, "Playlists", "Sets", "A_B- Live")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	if got := l.ManifestDir(nil); got != l.PlaylistsDir {
		t.Fatalf("empty segments should return playlists root, got %q", got)
	}
}
