package note

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoteExists is returned by Create when a note with the same title exists.
	ErrNoteExists = errors.New("note already exists")
	// ErrNoteNotFound is returned when an identifier names no note.
	ErrNoteNotFound = errors.New("note not found")
	// ErrInvalidID is returned for numeric identifiers that are zero or unknown.
	ErrInvalidID = errors.New("invalid note ID")
	// ErrInvalidTitle is returned for empty titles or titles spanning lines.
	ErrInvalidTitle = errors.New("invalid note title")
	// ErrAmbiguousTitle is returned when several notes share the requested title.
	ErrAmbiguousTitle = errors.New("ambiguous note title")
	// ErrIndex wraps failures of the sidecar index.
	ErrIndex = errors.New("note index error")
)

// IOError wraps a file-system failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("I/O error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func ioErr(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

// NotFoundError reports an unknown identifier along with close titles.
type NotFoundError struct {
	Identifier  string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("note not found: %s", e.Identifier)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean: " + strings.Join(e.Suggestions, ", ") + "?)"
	}
	return msg
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNoteNotFound }

// AmbiguousTitleError lists the IDs sharing a title.
type AmbiguousTitleError struct {
	Title string
	IDs   []int64
}

func (e *AmbiguousTitleError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("ambiguous note title %q: matches IDs %s", e.Title, strings.Join(ids, ", "))
}

func (e *AmbiguousTitleError) Is(target error) bool { return target == ErrAmbiguousTitle }

func indexErr(err error) error {
	return fmt.Errorf("%w: %w", ErrIndex, err)
}
