// Package index maintains a SQLite catalog of parsed beatmaps, so large
// local collections can be searched without re-parsing every file.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"osukit/beatmap"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS beatmaps (
	path        TEXT PRIMARY KEY,
	set_id      INTEGER NOT NULL DEFAULT 0,
	beatmap_id  INTEGER NOT NULL DEFAULT 0,
	title       TEXT NOT NULL DEFAULT '',
	artist      TEXT NOT NULL DEFAULT '',
	creator     TEXT NOT NULL DEFAULT '',
	version     TEXT NOT NULL DEFAULT '',
	tags        TEXT NOT NULL DEFAULT '',
	mode        INTEGER NOT NULL DEFAULT 0,
	ar          REAL NOT NULL DEFAULT 0,
	cs          REAL NOT NULL DEFAULT 0,
	od          REAL NOT NULL DEFAULT 0,
	hp          REAL NOT NULL DEFAULT 0,
	object_count INTEGER NOT NULL DEFAULT 0,
	updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_beatmaps_set ON beatmaps(set_id);
CREATE INDEX IF NOT EXISTS idx_beatmaps_artist ON beatmaps(artist);
`

// DB wraps a sql.DB with beatmap catalog operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Row is one cataloged beatmap.
type Row struct {
	Path        string
	SetID       int
	BeatmapID   int
	Title       string
	Artist      string
	Creator     string
	Version     string
	Tags        string
	Mode        int
	AR          float64
	CS          float64
	OD          float64
	HP          float64
	ObjectCount int
}

// NewRow extracts the indexed fields from a parsed beatmap.
func NewRow(path string, b *beatmap.Beatmap) Row {
	return Row{
		Path:        path,
		SetID:       b.Metadata.BeatmapSetID,
		BeatmapID:   b.Metadata.BeatmapID,
		Title:       b.Metadata.Title,
		Artist:      b.Metadata.Artist,
		Creator:     b.Metadata.Creator,
		Version:     b.Metadata.Version,
		Tags:        b.Metadata.Tags,
		Mode:        b.General.Mode,
		AR:          b.Difficulty.ApproachRate,
		CS:          b.Difficulty.CircleSize,
		OD:          b.Difficulty.OverallDifficulty,
		HP:          b.Difficulty.HPDrainRate,
		ObjectCount: len(b.HitObjects),
	}
}

// Upsert inserts or replaces one beatmap row.
func (db *DB) Upsert(r Row) error {
	_, err := db.conn.Exec(`
		INSERT INTO beatmaps (path, set_id, beatmap_id, title, artist, creator,
			version, tags, mode, ar, cs, od, hp, object_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			set_id       = excluded.set_id,
			beatmap_id   = excluded.beatmap_id,
			title        = excluded.title,
			artist       = excluded.artist,
			creator      = excluded.creator,
			version      = excluded.version,
			tags         = excluded.tags,
			mode         = excluded.mode,
			ar           = excluded.ar,
			cs           = excluded.cs,
			od           = excluded.od,
			hp           = excluded.hp,
			object_count = excluded.object_count,
			updated_at   = excluded.updated_at
	`, r.Path, r.SetID, r.BeatmapID, r.Title, r.Artist, r.Creator,
		r.Version, r.Tags, r.Mode, r.AR, r.CS, r.OD, r.HP, r.ObjectCount)
	if err != nil {
		return fmt.Errorf("index: upsert %s: %w", r.Path, err)
	}
	return nil
}

// Delete removes one beatmap row. Deleting an unknown path is not an error.
func (db *DB) Delete(path string) error {
	if _, err := db.conn.Exec(`DELETE FROM beatmaps WHERE path = ?`, path); err != nil {
		return fmt.Errorf("index: delete %s: %w", path, err)
	}
	return nil
}

// Get returns the row stored for path.
func (db *DB) Get(path string) (Row, bool, error) {
	r := Row{Path: path}
	err := db.conn.QueryRow(`
		SELECT set_id, beatmap_id, title, artist, creator, version, tags,
			mode, ar, cs, od, hp, object_count
		FROM beatmaps WHERE path = ?
	`, path).Scan(&r.SetID, &r.BeatmapID, &r.Title, &r.Artist, &r.Creator,
		&r.Version, &r.Tags, &r.Mode, &r.AR, &r.CS, &r.OD, &r.HP, &r.ObjectCount)
	if err == sql.ErrNoRows {
		return Row{}, false, nil
	}
	if err != nil {
		return Row{}, false, fmt.Errorf("index: get %s: %w", path, err)
	}
	return r, true, nil
}

// AllPaths returns every indexed file path.
func (db *DB) AllPaths() (map[string]struct{}, error) {
	rows, err := db.conn.Query(`SELECT path FROM beatmaps`)
	if err != nil {
		return nil, fmt.Errorf("index: all paths: %w", err)
	}
	defer rows.Close()
	out := make(map[string]struct{})
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out[p] = struct{}{}
	}
	return out, rows.Err()
}

// Search matches the query as a substring of title, artist, creator, or
// tags, case-insensitively, ordered by artist then title.
func (db *DB) Search(q string) ([]Row, error) {
	pattern := "%" + q + "%"
	rows, err := db.conn.Query(`
		SELECT path, set_id, beatmap_id, title, artist, creator, version, tags,
			mode, ar, cs, od, hp, object_count
		FROM beatmaps
		WHERE title LIKE ? OR artist LIKE ? OR creator LIKE ? OR tags LIKE ?
		ORDER BY artist, title, version
	`, pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("index: search %q: %w", q, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Path, &r.SetID, &r.BeatmapID, &r.Title, &r.Artist,
			&r.Creator, &r.Version, &r.Tags, &r.Mode, &r.AR, &r.CS, &r.OD,
			&r.HP, &r.ObjectCount); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SetRows returns the rows of one beatmap set.
func (db *DB) SetRows(setID int) ([]Row, error) {
	rows, err := db.conn.Query(`
		SELECT path, set_id, beatmap_id, title, artist, creator, version, tags,
			mode, ar, cs, od, hp, object_count
		FROM beatmaps WHERE set_id = ? ORDER BY version
	`, setID)
	if err != nil {
		return nil, fmt.Errorf("index: set %d: %w", setID, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Path, &r.SetID, &r.BeatmapID, &r.Title, &r.Artist,
			&r.Creator, &r.Version, &r.Tags, &r.Mode, &r.AR, &r.CS, &r.OD,
			&r.HP, &r.ObjectCount); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
