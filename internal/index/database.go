// Package index maintains the sidecar SQLite index for a notes directory.
//
// The index is a cache: every row can be rebuilt from a directory scan. The
// ID counter is the only state that cannot be; it is mirrored to HighWaterFile
// in the notes directory so a rebuilt index keeps IDs monotonic.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

const (
	// Dir is the sidecar directory created inside the notes directory.
	Dir = ".rsnote"

	// HighWaterFile holds the next ID to allocate. It lives in the notes
	// directory itself so it survives removal of Dir.
	HighWaterFile = ".rsnote-next-id"

	dbFile   = "index.db"
	lockFile = "index.lock"
)

// CurrentDBVersion is the current database schema version.
const CurrentDBVersion = 1

var (
	// ErrNotFound indicates the requested note is not in the index.
	ErrNotFound = errors.New("note not found in index")
	// ErrIndexLocked indicates another process is rebuilding the index.
	ErrIndexLocked = errors.New("index is locked for rebuild")
	// ErrNoIndex is returned by OpenReadOnly when there is no usable index.
	ErrNoIndex = errors.New("no index for notes directory")
)

// Entry is one indexed note.
type Entry struct {
	ID          int64
	Title       string
	Filename    string // relative to the notes directory
	Created     string
	LastUpdated string
	ModTime     int64 // file mtime, unix nanoseconds
	Size        int64
}

// Database is the SQLite database handle.
type Database struct {
	db            *sql.DB
	dir           string
	highWaterPath string
}

// Open opens or creates the index for notesDir. An index written by an
// incompatible schema version is deleted and recreated empty; callers are
// expected to reconcile it with a directory scan afterwards.
func Open(notesDir string) (*Database, error) {
	dbDir := filepath.Join(notesDir, Dir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", Dir, err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	if !isSchemaCompatible(dbPath) {
		if err := removeDatabaseFiles(dbPath); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	d := &Database{db: db, dir: dbDir, highWaterPath: filepath.Join(notesDir, HighWaterFile)}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// OpenReadOnly opens the existing index for notesDir without creating,
// migrating or writing anything. It returns ErrNoIndex when the index is
// missing or was written by another schema version.
func OpenReadOnly(notesDir string) (*Database, error) {
	dbPath := filepath.Join(notesDir, Dir, dbFile)
	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoIndex
		}
		return nil, fmt.Errorf("failed to stat index: %w", err)
	}
	if !isSchemaCompatible(dbPath) {
		return nil, ErrNoIndex
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=query_only(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Database{db: db}, nil
}

// OpenInMemory opens an in-memory database (for testing).
func OpenInMemory() (*Database, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Every pooled connection would otherwise get its own empty database.
	db.SetMaxOpenConns(1)

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.db.Close()
}

// isSchemaCompatible reports whether the file at dbPath is absent or carries
// the current schema version.
func isSchemaCompatible(dbPath string) bool {
	if _, err := os.Stat(dbPath); err != nil {
		return true
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return false
	}
	defer db.Close()

	var value string
	err = db.QueryRow(`SELECT value FROM meta WHERE key = 'version'`).Scan(&value)
	if err != nil {
		return false
	}
	return value == strconv.Itoa(CurrentDBVersion)
}

func removeDatabaseFiles(dbPath string) error {
	paths := []string{dbPath, dbPath + "-wal", dbPath + "-shm"}
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

// initialize creates the database schema.
func (d *Database) initialize() error {
	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			filename TEXT NOT NULL UNIQUE,
			created TEXT NOT NULL,
			last_updated TEXT NOT NULL DEFAULT '',
			mod_time INTEGER NOT NULL DEFAULT 0,
			size INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_notes_title ON notes(title);
	`
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	_, err := d.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('version', ?)`,
		strconv.Itoa(CurrentDBVersion))
	if err != nil {
		return fmt.Errorf("failed to set database version: %w", err)
	}
	return nil
}
