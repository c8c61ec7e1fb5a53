package pathresolve_test

import (
	"os"
	"path/filepath"
	"testing"

	"cratesync/internal/pathresolve"
)

func TestResolvePlainJoin(t *testing.T) {
	got := pathresolve.Resolve("/music/house/", "track.flac")
	if got != "/music/house/track.flac" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveTrailingSlashes(t *testing.T) {
	got := pathresolve.Resolve("/music/house///", "track.flac")
	if got != "/music/house/track.flac" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveFolderEndsWithFilename(t *testing.T) {
	got := pathresolve.Resolve("/music/house/track.flac", "track.flac")
	if got != "/music/house/track.flac" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveDuplicatedSegment(t *testing.T) {
	got := pathresolve.Resolve("/music/house/track.flac/track.flac", "track.flac")
	if got != "/music/house/track.flac" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveInteriorFilenameSegment(t *testing.T) {
	got := pathresolve.Resolve("/music/house/track.flac/stray", "track.flac")
	if got != "/music/house/track.flac" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveFileScheme(t *testing.T) {
	got := pathresolve.Resolve("file:///music/deep%20house/", "late%20night.flac")
	if got != "/music/deep house/late night.flac" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveFileSchemeLocalhost(t *testing.T) {
	got := pathresolve.Resolve("file://localhost/music/", "track.flac")
	if got != "/music/track.flac" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveEmptyFileRef(t *testing.T) {
	if got := pathresolve.Resolve("/music/", ""); got != "" {
		t.Fatalf("expected empty path, got %q", got)
	}
}

func TestResolveEmptyFolderUsesFilename(t *testing.T) {
	got := pathresolve.Resolve("", "/music/track.flac")
	if got != "/music/track.flac" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveBackslashRetry(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "house")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	real := filepath.Join(sub, "track.flac")
	if err := os.WriteFile(real, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := pathresolve.Resolve(root+`\house`, "track.flac")
	if got != real {
		t.Fatalf("expected %q, got %q", real, got)
	}
}

func TestResolveBackslashKeptWhenNeitherExists(t *testing.T) {
	got := pathresolve.Resolve(`/nope\house`, "track.flac")
	// Conversion still applies; the result is best-effort either way.
	if got != "/nope/house/track.flac" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveInvalidPercentEncodingKeptVerbatim(t *testing.T) {
	got := pathresolve.Resolve("/music/100%/", "track.flac")
	if got != "/music/100%/track.flac" {
		t.Fatalf("got %q", got)
	}
}
