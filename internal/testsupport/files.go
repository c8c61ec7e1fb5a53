package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// flacMagic is the stream marker real FLAC files open with. Fixtures only
// need to look like audio to size checks, not decode.
var flacMagic = []byte("fLaC")

// WriteAudioFile creates a fake audio file of exactly size bytes: the FLAC
// stream marker followed by a deterministic sawtooth fill. A size <= 0
// writes a single byte.
func WriteAudioFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}

	data := make([]byte, size)
	n := copy(data, flacMagic)
	for i := n; i < len(data); i++ {
		data[i] = byte(i % 251)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
