// Package exportstate persists per-destination export progress so an
// interrupted run can resume without redoing finished playlists.
package exportstate

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"cratesync/internal/fileutil"
)

// Version identifies the state file layout. Older or unknown versions are
// discarded and the run starts fresh.
const Version = 1

// TransferRecord is the outcome of one playlist on one destination.
type TransferRecord struct {
	Completed    bool   `json:"completed"`
	Name         string `json:"name"`
	TracksTotal  int    `json:"tracks_total"`
	TracksCopied int    `json:"tracks_copied"`
	TracksFailed int    `json:"tracks_failed"`
	ManifestPath string `json:"manifest_path,omitempty"`
}

// Stats aggregates a whole run.
type Stats struct {
	PlaylistsTotal     int   `json:"playlists_total"`
	PlaylistsCompleted int   `json:"playlists_completed"`
	PlaylistsSkipped   int   `json:"playlists_skipped"`
	PlaylistsFailed    int   `json:"playlists_failed"`
	TracksTotal        int   `json:"tracks_total"`
	TracksCopied       int   `json:"tracks_copied"`
	TracksSkipped      int   `json:"tracks_skipped"`
	TracksFailed       int   `json:"tracks_failed"`
	BytesCopied        int64 `json:"bytes_copied"`
}

// File is the on-disk state at the destination root.
type File struct {
	Version     int                       `json:"version"`
	RunID       string                    `json:"run_id"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Playlists   map[string]TransferRecord `json:"playlists"`
	Stats       Stats                     `json:"stats"`

	path string
}

// New returns a fresh state bound to path with a new run id.
func New(path string) *File {
	return &File{
		Version:   Version,
		RunID:     uuid.NewString(),
		Playlists: make(map[string]TransferRecord),
		path:      path,
	}
}

// Load reads the state at path. A missing file or an unreadable/foreign
// layout yields a fresh state; resumption is best-effort by design.
func Load(path string) *File {
	data, err := os.ReadFile(path)
	if err != nil {
		return New(path)
	}

	var state File
	if err := json.Unmarshal(data, &state); err != nil || state.Version != Version {
		return New(path)
	}
	state.path = path
	if state.Playlists == nil {
		state.Playlists = make(map[string]TransferRecord)
	}
	if state.RunID == "" {
		state.RunID = uuid.NewString()
	}
	return &state
}

// Path returns the file the state persists to.
func (f *File) Path() string { return f.path }

// ResetRun stamps a new run id and clears the aggregate stats while keeping
// every transfer record. A fresh run overwrites records as it reprocesses
// playlists but must never erase those it does not touch.
func (f *File) ResetRun() {
	f.RunID = uuid.NewString()
	f.Stats = Stats{}
}

// Record stores the outcome for a collection id.
func (f *File) Record(collectionID string, record TransferRecord) {
	f.Playlists[collectionID] = record
}

// CompletedRecord returns the record for id if it finished in a previous run.
func (f *File) CompletedRecord(collectionID string) (TransferRecord, bool) {
	record, ok := f.Playlists[collectionID]
	if !ok || !record.Completed {
		return TransferRecord{}, false
	}
	return record, true
}

// Save writes the state atomically so a crash mid-write never leaves a
// truncated file on the destination.
func (f *File) Save() error {
	f.GeneratedAt = time.Now().UTC()
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := fileutil.WriteFileAtomic(f.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write state %s: %w", f.path, err)
	}
	return nil
}

// AcquireLock takes a non-blocking exclusive lock at path, guarding the
// destination against concurrent exports. Release the returned lock with
// Unlock.
func AcquireLock(path string) (*flock.Flock, error) {
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire destination lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("destination is locked by another export (%s)", path)
	}
	return lock, nil
}
