package exportstate_test

import (
	"os"
	"path/filepath"
	"testing"

	"cratesync/internal/exportstate"
)

func TestLoadMissingFileReturnsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	state := exportstate.Load(path)
	if state.RunID == "" {
		t.Fatal("fresh state should carry a run id")
	}
	if len(state.Playlists) != 0 {
		t.Fatalf("fresh state should have no records, got %d", len(state.Playlists))
	}
	if state.Path() != path {
		t.Fatalf("unexpected path %q", state.Path())
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	state := exportstate.New(path)
	state.Record("42", exportstate.TransferRecord{
		Completed:    true,
		Name:         "Warmup",
		TracksTotal:  10,
		TracksCopied: 9,
		TracksFailed: 1,
		ManifestPath: "Playlists/Warmup.m3u8",
	})
	state.Stats.PlaylistsCompleted = 1
	state.Stats.BytesCopied = 2048
	if err := state.Save(); err != nil {
		t.Fatal(err)
	}

	loaded := exportstate.Load(path)
	if loaded.RunID != state.RunID {
		t.Fatalf("run id not preserved: %q vs %q", loaded.RunID, state.RunID)
	}
	record, ok := loaded.CompletedRecord("42")
	if !ok {
		t.Fatal("expected completed record for 42")
	}
	if record.Name != "Warmup" || record.TracksCopied != 9 || record.TracksFailed != 1 {
		t.Fatalf("unexpected record: %+v", record)
	}
	if loaded.Stats.BytesCopied != 2048 {
		t.Fatalf("unexpected stats: %+v", loaded.Stats)
	}
	if loaded.GeneratedAt.IsZero() {
		t.Fatal("generated_at should be stamped on save")
	}
}

func TestResetRunKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	state := exportstate.New(path)
	state.Record("1", exportstate.TransferRecord{Completed: true, Name: "Warmup", TracksTotal: 4})
	state.Stats.PlaylistsCompleted = 1
	if err := state.Save(); err != nil {
		t.Fatal(err)
	}

	loaded := exportstate.Load(path)
	oldRunID := loaded.RunID
	loaded.ResetRun()

	if loaded.RunID == oldRunID {
		t.Fatal("expected a new run id")
	}
	if loaded.Stats.PlaylistsCompleted != 0 {
		t.Fatalf("stats should reset: %+v", loaded.Stats)
	}
	if _, ok := loaded.CompletedRecord("1"); !ok {
		t.Fatal("records must survive a run reset")
	}
}

func TestCompletedRecordIgnoresUnfinished(t *testing.T) {
	state := exportstate.New(filepath.Join(t.TempDir(), "state.json"))
	state.Record("1", exportstate.TransferRecord{Completed: false, Name: "Partial"})
	if _, ok := state.CompletedRecord("1"); ok {
		t.Fatal("unfinished record must not count as completed")
	}
	if _, ok := state.CompletedRecord("absent"); ok {
		t.Fatal("absent record must not count as completed")
	}
}

func TestLoadCorruptFileReturnsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	state := exportstate.Load(path)
	if len(state.Playlists) != 0 {
		t.Fatal("corrupt state should be discarded")
	}
}

func TestLoadForeignVersionReturnsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(`{"version": 99, "playlists": {"1": {"completed": true}}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	state := exportstate.Load(path)
	if _, ok := state.CompletedRecord("1"); ok {
		t.Fatal("foreign-version state should be discarded")
	}
}

func TestAcquireLockRejectsSecondHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.lock")

	lock, err := exportstate.AcquireLock(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = lock.Unlock() }()

	if _, err := exportstate.AcquireLock(path); err == nil {
		t.Fatal("second lock acquisition should fail")
	}

	if err := lock.Unlock(); err != nil {
		t.Fatal(err)
	}
	again, err := exportstate.AcquireLock(path)
	if err != nil {
		t.Fatalf("lock should be reacquirable after release: %v", err)
	}
	_ = again.Unlock()
}
