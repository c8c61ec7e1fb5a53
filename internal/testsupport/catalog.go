package testsupport

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

const catalogSchema = `
CREATE TABLE djmdPlaylist (
    ID TEXT PRIMARY KEY,
    Seq INTEGER,
    Name TEXT,
    ParentID TEXT,
    Attribute INTEGER DEFAULT 0,
    SmartList TEXT,
    rb_local_deleted INTEGER DEFAULT 0
);
CREATE TABLE djmdSmartList (
    PlaylistID TEXT
);
CREATE TABLE djmdSongPlaylist (
    ID TEXT PRIMARY KEY,
    PlaylistID TEXT,
    ContentID TEXT,
    TrackNo INTEGER,
    rb_local_deleted INTEGER DEFAULT 0
);
CREATE TABLE djmdContent (
    ID TEXT PRIMARY KEY,
    Title TEXT,
    ArtistID TEXT,
    FolderPath TEXT,
    FileNameL TEXT,
    FileNameS TEXT,
    rb_local_deleted INTEGER DEFAULT 0
);
CREATE TABLE djmdArtist (
    ID TEXT PRIMARY KEY,
    Name TEXT
);
`

// CatalogBuilder seeds a rekordbox-shaped SQLite fixture for tests.
type CatalogBuilder struct {
	t    testing.TB
	db   *sql.DB
	path string
	seq  int
}

// NewCatalog creates a fixture database named master.db in its own temp
// directory and returns a builder for seeding it.
func NewCatalog(t testing.TB) *CatalogBuilder {
	t.Helper()

	path := filepath.Join(t.TempDir(), "master.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(catalogSchema); err != nil {
		t.Fatalf("create fixture schema: %v", err)
	}
	return &CatalogBuilder{t: t, db: db, path: path}
}

// Path returns the fixture database file.
func (b *CatalogBuilder) Path() string { return b.path }

// AddNode inserts a playlist-hierarchy row. parentID may be "" or "root"
// for top-level nodes.
func (b *CatalogBuilder) AddNode(id, name, parentID string) {
	b.t.Helper()
	b.seq++
	if _, err := b.db.Exec(
		`INSERT INTO djmdPlaylist (ID, Seq, Name, ParentID) VALUES (?, ?, ?, ?)`,
		id, b.seq, name, parentID,
	); err != nil {
		b.t.Fatalf("insert node %s: %v", id, err)
	}
}

// AddDeletedNode inserts a locally deleted hierarchy row, which catalog
// queries must filter out.
func (b *CatalogBuilder) AddDeletedNode(id, name, parentID string) {
	b.t.Helper()
	b.seq++
	if _, err := b.db.Exec(
		`INSERT INTO djmdPlaylist (ID, Seq, Name, ParentID, rb_local_deleted) VALUES (?, ?, ?, ?, 1)`,
		id, b.seq, name, parentID,
	); err != nil {
		b.t.Fatalf("insert deleted node %s: %v", id, err)
	}
}

// MarkSmart registers a node id as a smart playlist.
func (b *CatalogBuilder) MarkSmart(playlistID string) {
	b.t.Helper()
	if _, err := b.db.Exec(`INSERT INTO djmdSmartList (PlaylistID) VALUES (?)`, playlistID); err != nil {
		b.t.Fatalf("mark smart %s: %v", playlistID, err)
	}
}

// AddTrack appends a track row to a playlist. The content and artist rows
// are created alongside the association.
func (b *CatalogBuilder) AddTrack(playlistID, title, artist, folderRef, fileRef string, trackNo int) {
	b.t.Helper()

	contentID := fmt.Sprintf("c-%s-%d", playlistID, trackNo)
	artistID := ""
	if artist != "" {
		artistID = "a-" + contentID
		if _, err := b.db.Exec(`INSERT INTO djmdArtist (ID, Name) VALUES (?, ?)`, artistID, artist); err != nil {
			b.t.Fatalf("insert artist: %v", err)
		}
	}
	if _, err := b.db.Exec(
		`INSERT INTO djmdContent (ID, Title, ArtistID, FolderPath, FileNameL) VALUES (?, ?, ?, ?, ?)`,
		contentID, title, artistID, folderRef, fileRef,
	); err != nil {
		b.t.Fatalf("insert content: %v", err)
	}
	if _, err := b.db.Exec(
		`INSERT INTO djmdSongPlaylist (ID, PlaylistID, ContentID, TrackNo) VALUES (?, ?, ?, ?)`,
		fmt.Sprintf("sp-%s-%d", playlistID, trackNo), playlistID, contentID, trackNo,
	); err != nil {
		b.t.Fatalf("insert song-playlist row: %v", err)
	}
}
