package manifest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cratesync/internal/manifest"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
}

func TestWriteRendersExtendedM3U(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "Playlists", "Sets")

	w := &manifest.Writer{Ext: "m3u8", Clock: fixedClock}
	path, err := w.Write(dir, "Warmup", []string{"Sets", "Warmup"}, []manifest.Entry{
		{Title: "First", Artist: "A", Path: filepath.Join(root, "Music", "house", "first.flac")},
		{Title: "Second", Artist: "B", Path: filepath.Join(root, "Music", "second.flac")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "Warmup.m3u8") {
		t.Fatalf("unexpected manifest path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	want := []string{
		"#EXTM3U",
		"# Playlist: Warmup",
		"# Path: Sets / Warmup",
		"# Generated: 2026-08-24T12:00:00Z",
		"#EXTINF:-1,A - First",
		"../../Music/house/first.flac",
		"#EXTINF:-1,B - Second",
		"../../Music/second.flac",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), data)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWriteRelativePathsResolveFromManifestDir(t *testing.T) {
	root := t.TempDir()
	trackPath := filepath.Join(root, "Music", "track.flac")
	if err := os.MkdirAll(filepath.Dir(trackPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(trackPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	dir := filepath.Join(root, "Playlists")
	w := &manifest.Writer{Ext: "m3u8", Clock: fixedClock}
	path, err := w.Write(dir, "Solo", []string{"Solo"}, []manifest.Entry{
		{Title: "Track", Artist: "A", Path: trackPath},
	})
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	rel := lines[len(lines)-1]
	resolved := filepath.Join(filepath.Dir(path), filepath.FromSlash(rel))
	if _, err := os.Stat(resolved); err != nil {
		t.Fatalf("relative entry %q does not resolve from manifest dir: %v", rel, err)
	}
}

func TestWriteSanitizesFileName(t *testing.T) {
	dir := t.TempDir()
	w := &manifest.Writer{Ext: "m3u8", Clock: fixedClock}
	path, err := w.Write(dir, "A/B: Live", []string{"A/B: Live"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "A_B- Live.m3u8" {
		t.Fatalf("unexpected file name %q", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// The display name inside the manifest keeps its original form.
	if !strings.Contains(string(data), "# Playlist: A/B: Live") {
		t.Fatalf("manifest lost original name:\n%s", data)
	}
}

func TestWriteEmptyEntries(t *testing.T) {
	dir := t.TempDir()
	w := &manifest.Writer{Ext: "m3u8", Clock: fixedClock}
	path, err := w.Write(dir, "Empty", []string{"Empty"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "#EXTM3U\n") {
		t.Fatalf("missing header:\n%s", data)
	}
	if strings.Contains(string(data), "#EXTINF") {
		t.Fatalf("empty manifest should have no entries:\n%s", data)
	}
}
