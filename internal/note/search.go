package note

import (
	"strconv"
	"strings"
)

// previewContext is the number of runes kept on each side of a content match.
const previewContext = 20

// Search finds notes whose title or body contains keyword, ignoring case.
// Results follow List order. A title match wins: such notes are reported once,
// without a preview, and their body is not read.
func (s *Store) Search(keyword string) ([]SearchResult, error) {
	entries, err := s.db.All()
	if err != nil {
		return nil, indexErr(err)
	}

	needle := strings.ToLower(keyword)
	var results []SearchResult
	for _, e := range entries {
		sum := s.summary(e)
		if strings.Contains(strings.ToLower(e.Title), needle) {
			results = append(results, SearchResult{Note: sum, Match: MatchTitle})
			continue
		}

		_, body, err := s.read(e, strconv.FormatInt(e.ID, 10))
		if err != nil {
			s.logger.Debug("skipping unreadable note in search", "id", e.ID, "error", err)
			continue
		}

		if preview, ok := extractPreview(body, needle); ok {
			results = append(results, SearchResult{Note: sum, Match: MatchContent, Preview: preview})
		}
	}
	return results, nil
}

// extractPreview returns the first case-insensitive occurrence of needle (which
// must already be lower-cased) with up to previewContext runes on each side.
// Truncated ends get "..." and newlines become spaces.
func extractPreview(body, needle string) (string, bool) {
	// strings.ToLower maps rune by rune, so rune offsets line up.
	runes := []rune(body)
	lower := []rune(strings.ToLower(body))
	target := []rune(needle)

	pos := runeIndex(lower, target)
	if pos < 0 {
		return "", false
	}

	start := pos - previewContext
	if start < 0 {
		start = 0
	}
	end := pos + len(target) + previewContext
	if end > len(runes) {
		end = len(runes)
	}

	preview := string(runes[start:end])
	if start > 0 {
		preview = "..." + preview
	}
	if end < len(runes) {
		preview += "..."
	}

	preview = strings.ReplaceAll(preview, "\r\n", " ")
	preview = strings.ReplaceAll(preview, "\n", " ")
	return preview, true
}

func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, r := range needle {
			if haystack[i+j] != r {
				continue outer
			}
		}
		return i
	}
	return -1
}
