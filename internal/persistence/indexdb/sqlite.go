// Package indexdb keeps a sqlite catalog of imported blueprints so
// tools can look up a blueprint by content digest without re-reading
// and re-decoding every file.
package indexdb

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type DB struct {
	db *sql.DB
}

// Entry is one cataloged blueprint. Min and Size mirror the blueprint
// header; Materials lists every material name in the tree.
type Entry struct {
	ID         int64
	Digest     string
	Path       string
	Boxes      int
	Tiles      int
	Grid       int
	Min        [3]int
	Size       [3]int
	Materials  []string
	ImportedAt string
}

// Digest returns the catalog key for a blueprint file's raw bytes.
func Digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func Open(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	// WAL keeps concurrent readers cheap while a tool imports.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS blueprints (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	digest      TEXT NOT NULL UNIQUE,
	path        TEXT NOT NULL,
	boxes       INTEGER NOT NULL,
	tiles       INTEGER NOT NULL,
	grid        INTEGER NOT NULL,
	min_x       INTEGER NOT NULL,
	min_y       INTEGER NOT NULL,
	min_z       INTEGER NOT NULL,
	size_x      INTEGER NOT NULL,
	size_y      INTEGER NOT NULL,
	size_z      INTEGER NOT NULL,
	materials   TEXT NOT NULL,
	imported_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_blueprints_path ON blueprints(path);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Put upserts an entry keyed by digest and returns its row id.
func (d *DB) Put(e Entry) (int64, error) {
	mats, err := json.Marshal(e.Materials)
	if err != nil {
		return 0, err
	}
	when := e.ImportedAt
	if when == "" {
		when = time.Now().UTC().Format(time.RFC3339)
	}
	_, err = d.db.Exec(`
INSERT INTO blueprints (digest, path, boxes, tiles, grid, min_x, min_y, min_z, size_x, size_y, size_z, materials, imported_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(digest) DO UPDATE SET
	path=excluded.path, boxes=excluded.boxes, tiles=excluded.tiles, grid=excluded.grid,
	min_x=excluded.min_x, min_y=excluded.min_y, min_z=excluded.min_z,
	size_x=excluded.size_x, size_y=excluded.size_y, size_z=excluded.size_z,
	materials=excluded.materials, imported_at=excluded.imported_at`,
		e.Digest, e.Path, e.Boxes, e.Tiles, e.Grid,
		e.Min[0], e.Min[1], e.Min[2], e.Size[0], e.Size[1], e.Size[2],
		string(mats), when)
	if err != nil {
		return 0, fmt.Errorf("put %s: %w", e.Digest, err)
	}
	var id int64
	if err := d.db.QueryRow(`SELECT id FROM blueprints WHERE digest=?`, e.Digest).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Get looks an entry up by digest. The bool reports whether it exists.
func (d *DB) Get(digest string) (Entry, bool, error) {
	row := d.db.QueryRow(`
SELECT id, digest, path, boxes, tiles, grid, min_x, min_y, min_z, size_x, size_y, size_z, materials, imported_at
FROM blueprints WHERE digest=?`, digest)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// List returns every entry, most recently imported first.
func (d *DB) List() ([]Entry, error) {
	rows, err := d.db.Query(`
SELECT id, digest, path, boxes, tiles, grid, min_x, min_y, min_z, size_x, size_y, size_z, materials, imported_at
FROM blueprints ORDER BY imported_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (d *DB) Close() error {
	return d.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	var mats string
	err := s.Scan(&e.ID, &e.Digest, &e.Path, &e.Boxes, &e.Tiles, &e.Grid,
		&e.Min[0], &e.Min[1], &e.Min[2], &e.Size[0], &e.Size[1], &e.Size[2],
		&mats, &e.ImportedAt)
	if err != nil {
		return Entry{}, err
	}
	if err := json.Unmarshal([]byte(mats), &e.Materials); err != nil {
		return Entry{}, fmt.Errorf("materials column: %w", err)
	}
	return e, nil
}
