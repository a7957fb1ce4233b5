package testutil

import (
	"os"
	"path/filepath"
	"strings"
)

// AssertFileExists fails the test if the file does not exist.
func (n *TestNotes) AssertFileExists(relPath string) {
	n.t.Helper()
	if _, err := os.Stat(filepath.Join(n.Path, relPath)); os.IsNotExist(err) {
		n.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (n *TestNotes) AssertFileNotExists(relPath string) {
	n.t.Helper()
	if _, err := os.Stat(filepath.Join(n.Path, relPath)); err == nil {
		n.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (n *TestNotes) AssertFileContains(relPath, substr string) {
	n.t.Helper()
	content := n.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		n.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertNoteCount runs `list` and verifies the number of notes.
func (n *TestNotes) AssertNoteCount(expected int) {
	n.t.Helper()
	result := n.RunCLI("list")
	result.MustSucceed(n.t)
	if got := len(result.DataList("notes")); got != expected {
		n.t.Errorf("expected %d notes, got %d\nRaw: %s", expected, got, result.RawJSON)
	}
}
