package shellquote

import "testing"

func TestQuote(t *testing.T) {
	tests := map[string]string{
		"plain":       "'plain'",
		"it's":        `'it'\''s'`,
		"":            "''",
		"/tmp/a b.md": "'/tmp/a b.md'",
	}
	for in, want := range tests {
		if got := Quote(in); got != want {
			t.Errorf("Quote(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestQuoteIfNeeded(t *testing.T) {
	tests := map[string]string{
		"Shopping":      "Shopping",
		"42":            "42",
		"Shopping List": "'Shopping List'",
		"a$b":           "'a$b'",
		"don't":         `'don'\''t'`,
		"":              "''",
	}
	for in, want := range tests {
		if got := QuoteIfNeeded(in); got != want {
			t.Errorf("QuoteIfNeeded(%q) = %s, want %s", in, got, want)
		}
	}
}
