package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/aidanlsb/rsnote/internal/config"
	"github.com/aidanlsb/rsnote/internal/index"
	"github.com/aidanlsb/rsnote/internal/note"
	"github.com/aidanlsb/rsnote/internal/shellquote"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// Note errors
	ErrNoteNotFound   = "NOTE_NOT_FOUND"
	ErrNoteExists     = "NOTE_EXISTS"
	ErrInvalidID      = "INVALID_ID"
	ErrInvalidTitle   = "INVALID_TITLE"
	ErrAmbiguousTitle = "AMBIGUOUS_TITLE"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Database errors
	ErrDatabaseError  = "DATABASE_ERROR"
	ErrDatabaseLocked = "DATABASE_LOCKED"

	// Input errors
	ErrInvalidInput = "INVALID_INPUT"
	ErrEditorFailed = "EDITOR_FAILED"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// handleNoteError maps errors from the note store to error codes.
func handleNoteError(err error) error {
	var (
		notFound  *note.NotFoundError
		ambiguous *note.AmbiguousTitleError
		ioErr     *note.IOError
	)

	switch {
	case errors.As(err, &notFound):
		details := map[string]interface{}{"identifier": notFound.Identifier}
		suggestion := "Run 'rsnote list' to see all notes"
		if len(notFound.Suggestions) > 0 {
			details["suggestions"] = notFound.Suggestions
			suggestion = fmt.Sprintf("Did you mean: rsnote show %s", shellquote.QuoteIfNeeded(notFound.Suggestions[0]))
		}
		return handleErrorWithDetails(ErrNoteNotFound, err, suggestion, details)
	case errors.As(err, &ambiguous):
		return handleErrorWithDetails(ErrAmbiguousTitle, err, "Use the note's ID instead of its title",
			map[string]interface{}{"title": ambiguous.Title, "ids": ambiguous.IDs})
	case errors.Is(err, note.ErrInvalidID):
		return handleError(ErrInvalidID, err, "Run 'rsnote list' to see valid IDs")
	case errors.Is(err, note.ErrNoteExists):
		return handleError(ErrNoteExists, err, "Choose another title or use 'rsnote update'")
	case errors.Is(err, note.ErrInvalidTitle):
		return handleError(ErrInvalidTitle, err, "Titles must be non-empty, fit on one line and not be a plain number")
	case errors.Is(err, index.ErrIndexLocked):
		return handleError(ErrDatabaseLocked, err, "Another rsnote process is rebuilding the index; try again")
	case errors.Is(err, note.ErrIndex):
		return handleError(ErrDatabaseError, err, "Run 'rsnote reindex' to rebuild the index")
	case errors.As(err, &ioErr):
		if ioErr.Op == "read" || ioErr.Op == "stat" {
			return handleError(ErrFileReadError, err, "")
		}
		return handleError(ErrFileWriteError, err, "")
	case errors.Is(err, config.ErrParse), errors.Is(err, config.ErrSerialize):
		return handleError(ErrConfigInvalid, err, "")
	case errors.Is(err, os.ErrNotExist):
		return handleError(ErrFileNotFound, err, "")
	}
	return handleError(ErrInternal, err, "")
}
