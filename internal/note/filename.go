package note

import (
	"fmt"
	"strings"

	goslug "github.com/gosimple/slug"
)

// maxSlugLen bounds the human-readable part of a note filename.
const maxSlugLen = 60

// SanitizeTitle replaces every rune that is not an ASCII letter or digit with
// an underscore. This is the storage key older releases used as the filename,
// so distinct titles may share a result ("a b" and "a-b" both give "a_b").
func SanitizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// FileName returns the filename for a new note. The numeric prefix makes the
// name unique; the slug only helps people browsing the directory.
func FileName(id int64, title string) string {
	s := goslug.Make(title)
	if s == "" {
		s = strings.Trim(SanitizeTitle(title), "_")
	}
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-_")
	}
	if s == "" {
		return fmt.Sprintf("%d%s", id, Extension)
	}
	return fmt.Sprintf("%d-%s%s", id, s, Extension)
}
