// Package note implements the note store: one flat file per note inside a
// notes directory, with a sidecar index that gives every note a stable ID.
package note

// TimeLayout is the on-disk timestamp format (YYYY-MM-DD HH:MM:SS, local time).
const TimeLayout = "2006-01-02 15:04:05"

// Extension is appended to the filenames of notes created by this package.
// Notes written by older releases have no extension and are still recognized.
const Extension = ".note"

// Summary describes a note without its body.
type Summary struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Created     string `json:"created"`
	LastUpdated string `json:"last_updated"`
	Path        string `json:"path"`
}

// Note is a full note record.
type Note struct {
	Summary
	Body string `json:"body"`
}

// MatchType records where a search keyword was found.
type MatchType string

const (
	MatchTitle   MatchType = "title"
	MatchContent MatchType = "content"
)

// SearchResult is one note matched by Search.
type SearchResult struct {
	Note    Summary   `json:"note"`
	Match   MatchType `json:"match"`
	Preview string    `json:"preview,omitempty"`
}

// ReindexStats summarizes a directory scan.
type ReindexStats struct {
	Indexed int `json:"indexed"` // notes present in the index after the scan
	Adopted int `json:"adopted"` // files without an id header that were assigned one
	Removed int `json:"removed"` // index rows dropped because their file is gone
	Skipped int `json:"skipped"` // files that are not notes
}
