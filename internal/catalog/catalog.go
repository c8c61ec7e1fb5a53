package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// DatabaseFileName is the rekordbox database file inside a library directory.
const DatabaseFileName = "master.db"

// candidateDirs are tried newest-first under the Pioneer library directory.
var candidateDirs = []string{"rekordbox7", "rekordbox6", "rekordbox"}

// ErrNoDatabase indicates no rekordbox database directory could be found.
var ErrNoDatabase = errors.New("no rekordbox database found")

// DB is a read-only handle to a rekordbox catalog.
type DB struct {
	db   *sql.DB
	path string
}

// Locate returns the database file under pioneerDir, preferring newer
// rekordbox versions.
func Locate(pioneerDir string) (string, error) {
	for _, dir := range candidateDirs {
		path := filepath.Join(pioneerDir, dir, DatabaseFileName)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w under %s (checked %s)", ErrNoDatabase, pioneerDir, strings.Join(candidateDirs, ", "))
}

// Open connects to the database file at path in read-only mode.
func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("catalog database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA query_only = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	return &DB{db: db, path: path}, nil
}

// Path returns the database file backing this handle.
func (d *DB) Path() string {
	if d == nil {
		return ""
	}
	return d.path
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// ListCollections returns every playlist-hierarchy row that is not locally
// deleted, in catalog sequence order.
func (d *DB) ListCollections(ctx context.Context) ([]CollectionNode, error) {
	rows, err := d.db.QueryContext(ctx, `
        SELECT ID, IFNULL(Name, ''), IFNULL(ParentID, ''), IFNULL(Seq, 0)
        FROM djmdPlaylist
        WHERE rb_local_deleted = 0
        ORDER BY Seq, ID`)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var nodes []CollectionNode
	for rows.Next() {
		var node CollectionNode
		if err := rows.Scan(&node.ID, &node.Name, &node.ParentID, &node.Seq); err != nil {
			return nil, fmt.Errorf("scan collection row: %w", err)
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections: %w", err)
	}
	return nodes, nil
}

// ListDynamicIDs returns the ids of smart playlists. Their membership is a
// stored rule, not enumerable rows, so the exporter excludes them entirely.
func (d *DB) ListDynamicIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT PlaylistID FROM djmdSmartList`)
	if err != nil {
		return nil, fmt.Errorf("list smart playlists: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan smart playlist row: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate smart playlists: %w", err)
	}
	return ids, nil
}

// ListTracks returns the track rows of a playlist ordered by track number.
// Title and artist fall back to "Unknown"; the long filename wins over the
// short one when both are present.
func (d *DB) ListTracks(ctx context.Context, collectionID string) ([]TrackRef, error) {
	rows, err := d.db.QueryContext(ctx, `
        SELECT IFNULL(c.Title, ''), IFNULL(a.Name, ''),
               IFNULL(c.FolderPath, ''), IFNULL(c.FileNameL, ''), IFNULL(c.FileNameS, ''),
               IFNULL(sp.TrackNo, 0)
        FROM djmdSongPlaylist sp
        JOIN djmdContent c ON c.ID = sp.ContentID
        LEFT JOIN djmdArtist a ON a.ID = c.ArtistID
        WHERE sp.PlaylistID = ? AND sp.rb_local_deleted = 0
        ORDER BY sp.TrackNo`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list tracks for %s: %w", collectionID, err)
	}
	defer rows.Close()

	var tracks []TrackRef
	for rows.Next() {
		var title, artist, folder, fileLong, fileShort string
		var order int
		if err := rows.Scan(&title, &artist, &folder, &fileLong, &fileShort, &order); err != nil {
			return nil, fmt.Errorf("scan track row: %w", err)
		}
		fileRef := strings.TrimSpace(fileLong)
		if fileRef == "" {
			fileRef = strings.TrimSpace(fileShort)
		}
		title = strings.TrimSpace(title)
		if title == "" {
			title = "Unknown"
		}
		artist = strings.TrimSpace(artist)
		if artist == "" {
			artist = "Unknown"
		}
		tracks = append(tracks, TrackRef{
			Title:      title,
			Artist:     artist,
			FolderRef:  strings.TrimSpace(folder),
			FileRef:    fileRef,
			TrackOrder: order,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tracks: %w", err)
	}
	return tracks, nil
}
