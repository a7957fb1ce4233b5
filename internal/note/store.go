package note

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/aidanlsb/rsnote/internal/atomicfile"
	"github.com/aidanlsb/rsnote/internal/index"
)

// maxSuggestions caps the "did you mean" titles attached to NotFoundError.
const maxSuggestions = 3

// Store performs CRUD and search over the notes in one directory.
// A Store is not safe for concurrent use.
type Store struct {
	dir    string
	db     *index.Database
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for created/last_updated stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens the store rooted at dir, creating the directory and its index
// if needed, and reconciles the index with the files on disk.
func Open(dir string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("notes directory is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, ioErr("resolve", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, ioErr("create", abs, err)
	}

	s := &Store{
		dir:    abs,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := index.Open(abs)
	if err != nil {
		return nil, indexErr(err)
	}
	s.db = db

	if _, err := s.sync(false); err != nil {
		if !errors.Is(err, index.ErrIndexLocked) {
			db.Close()
			return nil, err
		}
		s.logger.Debug("index rebuild in progress elsewhere, skipping scan", "dir", abs)
	}
	return s, nil
}

// ListIndexed lists the notes recorded in dir's index. Unlike Open it never
// creates the directory, scans files or rewrites legacy notes, so it is safe
// for shell completion. The result may be stale.
func ListIndexed(dir string) ([]Summary, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, ioErr("resolve", dir, err)
	}
	db, err := index.OpenReadOnly(abs)
	if err != nil {
		return nil, indexErr(err)
	}
	defer db.Close()

	s := &Store{dir: abs, db: db}
	return s.List()
}

// Close releases the index.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the absolute notes directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) timestamp() string {
	return s.now().Format(TimeLayout)
}

func (s *Store) path(e index.Entry) string {
	return filepath.Join(s.dir, e.Filename)
}

func (s *Store) summary(e index.Entry) Summary {
	return Summary{
		ID:          e.ID,
		Title:       e.Title,
		Created:     e.Created,
		LastUpdated: e.LastUpdated,
		Path:        s.path(e),
	}
}

// CheckNew reports whether Create would accept title, so callers can fail
// before collecting content. Titles must be non-empty, fit on one line, not
// parse as an ID and not be in use.
func (s *Store) CheckNew(title string) error {
	if strings.TrimSpace(title) == "" || strings.ContainsAny(title, "\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidTitle, title)
	}
	if isID(title) {
		return fmt.Errorf("%w: %q would be read as a note ID", ErrInvalidTitle, title)
	}

	existing, err := s.db.ByTitle(title)
	if err != nil {
		return indexErr(err)
	}
	if len(existing) > 0 {
		return fmt.Errorf("%w: %s (ID %d)", ErrNoteExists, title, existing[0].ID)
	}
	return nil
}

// Create writes a new note. content must already be resolved by the caller.
// Titles are compared exactly, so "a b" and "a-b" are distinct notes.
func (s *Store) Create(title, content string) (Summary, error) {
	if err := s.CheckNew(title); err != nil {
		return Summary{}, err
	}

	id, err := s.db.NextID()
	if err != nil {
		return Summary{}, indexErr(err)
	}

	ts := s.timestamp()
	h := header{ID: id, Title: title, Created: ts, LastUpdated: ts}
	name := FileName(id, title)
	path := filepath.Join(s.dir, name)

	if err := atomicfile.WriteNew(path, encode(h, content), 0o644); err != nil {
		if errors.Is(err, atomicfile.ErrExists) {
			return Summary{}, fmt.Errorf("%w: file %s", ErrNoteExists, name)
		}
		return Summary{}, ioErr("write", path, err)
	}

	entry, err := s.indexFile(h, name)
	if err != nil {
		return Summary{}, err
	}
	s.logger.Debug("created note", "id", id, "file", name)
	return s.summary(entry), nil
}

// List returns every note ordered by ID.
func (s *Store) List() ([]Summary, error) {
	entries, err := s.db.All()
	if err != nil {
		return nil, indexErr(err)
	}
	out := make([]Summary, 0, len(entries))
	for _, e := range entries {
		out = append(out, s.summary(e))
	}
	return out, nil
}

// Get returns the full note named by identifier.
func (s *Store) Get(identifier string) (Note, error) {
	e, err := s.resolve(identifier)
	if err != nil {
		return Note{}, err
	}
	h, body, err := s.read(e, identifier)
	if err != nil {
		return Note{}, err
	}
	sum := s.summary(e)
	sum.Title, sum.Created, sum.LastUpdated = h.Title, h.Created, h.LastUpdated
	return Note{Summary: sum, Body: body}, nil
}

// Show returns the body of the note named by identifier.
func (s *Store) Show(identifier string) (string, error) {
	n, err := s.Get(identifier)
	if err != nil {
		return "", err
	}
	return n.Body, nil
}

// Update replaces the body of a note. The id, title and created stamp are
// kept; last_updated is set to now.
func (s *Store) Update(identifier, content string) (Summary, error) {
	e, err := s.resolve(identifier)
	if err != nil {
		return Summary{}, err
	}
	h, _, err := s.read(e, identifier)
	if err != nil {
		return Summary{}, err
	}
	h.ID = e.ID
	h.LastUpdated = s.timestamp()

	path := s.path(e)
	if err := atomicfile.WriteFile(path, encode(h, content), 0); err != nil {
		return Summary{}, ioErr("write", path, err)
	}

	entry, err := s.indexFile(h, e.Filename)
	if err != nil {
		return Summary{}, err
	}
	s.logger.Debug("updated note", "id", e.ID, "file", e.Filename)
	return s.summary(entry), nil
}

// Delete removes a note's file. Its ID is never handed out again.
func (s *Store) Delete(identifier string) error {
	e, err := s.resolve(identifier)
	if err != nil {
		return err
	}
	path := s.path(e)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			_ = s.db.Remove(e.ID)
			return s.notFound(identifier)
		}
		return ioErr("remove", path, err)
	}
	if err := s.db.Remove(e.ID); err != nil && !errors.Is(err, index.ErrNotFound) {
		return indexErr(err)
	}
	s.logger.Debug("deleted note", "id", e.ID, "file", e.Filename)
	return nil
}

// resolve maps an identifier to an index entry:
//  1. an unsigned integer is an ID (zero or unknown → ErrInvalidID);
//  2. otherwise an exact title;
//  3. otherwise a legacy filename equal to SanitizeTitle(identifier).
func (s *Store) resolve(identifier string) (index.Entry, error) {
	if n, err := parseID(identifier); err == nil {
		if n == 0 {
			return index.Entry{}, fmt.Errorf("%w: %s", ErrInvalidID, identifier)
		}
		e, err := s.db.ByID(int64(n))
		if errors.Is(err, index.ErrNotFound) {
			return index.Entry{}, fmt.Errorf("%w: %s", ErrInvalidID, identifier)
		}
		if err != nil {
			return index.Entry{}, indexErr(err)
		}
		return e, nil
	}

	matches, err := s.db.ByTitle(identifier)
	if err != nil {
		return index.Entry{}, indexErr(err)
	}
	switch len(matches) {
	case 0:
	case 1:
		return matches[0], nil
	default:
		ids := make([]int64, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return index.Entry{}, &AmbiguousTitleError{Title: identifier, IDs: ids}
	}

	e, err := s.db.ByFilename(SanitizeTitle(identifier))
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, index.ErrNotFound) {
		return index.Entry{}, indexErr(err)
	}
	return index.Entry{}, s.notFound(identifier)
}

func parseID(identifier string) (uint64, error) {
	return strconv.ParseUint(identifier, 10, 63)
}

func isID(identifier string) bool {
	_, err := parseID(identifier)
	return err == nil
}

// read loads and decodes the file behind e. A file that vanished or stopped
// being a note since the last scan is reported as not found.
func (s *Store) read(e index.Entry, identifier string) (header, string, error) {
	path := s.path(e)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			_ = s.db.Remove(e.ID)
			return header{}, "", s.notFound(identifier)
		}
		return header{}, "", ioErr("read", path, err)
	}
	h, body, ok, err := decode(data)
	if err != nil {
		return header{}, "", ioErr("read", path, err)
	}
	if !ok {
		_ = s.db.Remove(e.ID)
		return header{}, "", s.notFound(identifier)
	}
	return h, body, nil
}

// indexFile records the file as it now exists on disk.
func (s *Store) indexFile(h header, name string) (index.Entry, error) {
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return index.Entry{}, ioErr("stat", path, err)
	}
	entry := index.Entry{
		ID:          h.ID,
		Title:       h.Title,
		Filename:    name,
		Created:     h.Created,
		LastUpdated: h.LastUpdated,
		ModTime:     info.ModTime().UnixNano(),
		Size:        info.Size(),
	}
	if err := s.db.Upsert(entry); err != nil {
		return index.Entry{}, indexErr(err)
	}
	return entry, nil
}

func (s *Store) notFound(identifier string) error {
	nf := &NotFoundError{Identifier: identifier}
	titles, err := s.db.Titles()
	if err != nil || identifier == "" {
		return nf
	}
	for _, m := range fuzzy.Find(identifier, titles) {
		nf.Suggestions = append(nf.Suggestions, m.Str)
		if len(nf.Suggestions) == maxSuggestions {
			break
		}
	}
	return nf
}
