package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aidanlsb/rsnote/internal/atomicfile"
	"github.com/aidanlsb/rsnote/internal/sqlutil"
)

const entryColumns = `id, title, filename, created, last_updated, mod_time, size`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (Entry, error) {
	var e Entry
	err := r.Scan(&e.ID, &e.Title, &e.Filename, &e.Created, &e.LastUpdated, &e.ModTime, &e.Size)
	return e, err
}

func (d *Database) queryEntries(query string, args ...any) ([]Entry, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	return sqlutil.ScanRows(rows, func(r *sql.Rows) (Entry, error) {
		return scanEntry(r)
	})
}

// All returns every indexed note ordered by ID.
func (d *Database) All() ([]Entry, error) {
	entries, err := d.queryEntries(`SELECT ` + entryColumns + ` FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return entries, nil
}

// ByID returns the note with the given ID, or ErrNotFound.
func (d *Database) ByID(id int64) (Entry, error) {
	row := d.db.QueryRow(`SELECT `+entryColumns+` FROM notes WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

// ByFilename returns the note stored in filename, or ErrNotFound.
func (d *Database) ByFilename(filename string) (Entry, error) {
	row := d.db.QueryRow(`SELECT `+entryColumns+` FROM notes WHERE filename = ?`, filename)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

// ByTitle returns every note whose title equals title exactly, ordered by ID.
func (d *Database) ByTitle(title string) ([]Entry, error) {
	entries, err := d.queryEntries(`SELECT `+entryColumns+` FROM notes WHERE title = ? ORDER BY id`, title)
	if err != nil {
		return nil, fmt.Errorf("lookup title: %w", err)
	}
	return entries, nil
}

// Titles returns all indexed titles ordered by ID.
func (d *Database) Titles() ([]string, error) {
	rows, err := d.db.Query(`SELECT title FROM notes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return sqlutil.ScanStrings(rows)
}

// Upsert inserts or replaces the row for e.ID. Any other row pointing at the
// same file is dropped first, since a file holds exactly one note.
func (d *Database) Upsert(e Entry) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM notes WHERE filename = ? AND id != ?`, e.Filename, e.ID); err != nil {
		return fmt.Errorf("upsert note %d: %w", e.ID, err)
	}
	_, err = tx.Exec(`
		INSERT INTO notes (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			filename = excluded.filename,
			created = excluded.created,
			last_updated = excluded.last_updated,
			mod_time = excluded.mod_time,
			size = excluded.size`,
		e.ID, e.Title, e.Filename, e.Created, e.LastUpdated, e.ModTime, e.Size)
	if err != nil {
		return fmt.Errorf("upsert note %d: %w", e.ID, err)
	}
	if err := d.reserveTx(tx, e.ID); err != nil {
		return err
	}
	return tx.Commit()
}

// Remove deletes the row for id. The ID stays consumed.
func (d *Database) Remove(id int64) error {
	res, err := d.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove note %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// NextID allocates a fresh note ID. IDs are monotonic and never handed out
// twice, even after the note holding the highest ID is removed or the index
// is rebuilt from scratch.
func (d *Database) NextID() (int64, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	next, err := d.nextIDTx(tx)
	if err != nil {
		return 0, err
	}
	if err := d.setNextIDTx(tx, next+1); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("allocate id: %w", err)
	}
	return next, nil
}

// reserveTx raises the counter past id. It never moves it backwards.
func (d *Database) reserveTx(tx *sql.Tx, id int64) error {
	next, err := d.nextIDTx(tx)
	if err != nil {
		return err
	}
	if id < next {
		return nil
	}
	return d.setNextIDTx(tx, id+1)
}

// nextIDTx returns the smallest ID that may be allocated: the larger of the
// stored counter and the high-water file, raised past any ID already present
// in the notes table.
func (d *Database) nextIDTx(tx *sql.Tx) (int64, error) {
	next, err := d.readHighWater()
	if err != nil {
		return 0, err
	}

	var stored string
	err = tx.QueryRow(`SELECT value FROM meta WHERE key = 'next_id'`).Scan(&stored)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return 0, fmt.Errorf("read id counter: %w", err)
	default:
		if n, convErr := strconv.ParseInt(stored, 10, 64); convErr == nil && n > next {
			next = n
		}
	}

	var maxID sql.NullInt64
	if err := tx.QueryRow(`SELECT MAX(id) FROM notes`).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("read max id: %w", err)
	}
	if maxID.Valid && maxID.Int64 >= next {
		next = maxID.Int64 + 1
	}
	return next, nil
}

// setNextIDTx stores the counter in the index and in the high-water file.
// The file is written before the transaction commits, so a failed commit can
// only leave a gap, never a reused ID.
func (d *Database) setNextIDTx(tx *sql.Tx, next int64) error {
	_, err := tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('next_id', ?)`,
		strconv.FormatInt(next, 10))
	if err != nil {
		return fmt.Errorf("write id counter: %w", err)
	}
	return d.writeHighWater(next)
}

// readHighWater returns the counter saved next to the notes, or 1 when there
// is none. In-memory databases have no file.
func (d *Database) readHighWater() (int64, error) {
	if d.highWaterPath == "" {
		return 1, nil
	}
	data, err := os.ReadFile(d.highWaterPath)
	if errors.Is(err, os.ErrNotExist) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read id high-water mark: %w", err)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil || n < 1 {
		// A damaged file must not stop allocation; the index still has its counter.
		return 1, nil
	}
	return n, nil
}

func (d *Database) writeHighWater(next int64) error {
	if d.highWaterPath == "" {
		return nil
	}
	data := []byte(strconv.FormatInt(next, 10) + "\n")
	if err := atomicfile.WriteFile(d.highWaterPath, data, 0o644); err != nil {
		return fmt.Errorf("write id high-water mark: %w", err)
	}
	return nil
}
