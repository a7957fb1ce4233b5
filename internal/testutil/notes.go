// Package testutil provides reusable test utilities for rsnote tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestNotes represents a temporary notes directory for testing.
type TestNotes struct {
	Path       string
	ConfigPath string
	t          *testing.T
	files      map[string]string
}

// NewTestNotes creates a new test notes directory builder.
// Call Build() to create the actual directory.
func NewTestNotes(t *testing.T) *TestNotes {
	t.Helper()
	return &TestNotes{
		t:     t,
		files: make(map[string]string),
	}
}

// WithFile adds a file to the notes directory.
// The path is relative to the notes directory.
func (n *TestNotes) WithFile(path, content string) *TestNotes {
	n.files[path] = content
	return n
}

// WithLegacyNote adds a note in the format written by older releases: no id
// line and the sanitized title as the filename.
func (n *TestNotes) WithLegacyNote(filename, title, created, body string) *TestNotes {
	return n.WithFile(filename, LegacyNote(title, created, body))
}

// Build creates the notes directory, a config file pointing at it, and all
// configured files. Returns the TestNotes for method chaining.
func (n *TestNotes) Build() *TestNotes {
	n.t.Helper()

	root := n.t.TempDir()
	n.Path = filepath.Join(root, "notes")
	n.ConfigPath = filepath.Join(root, "config", "config.toml")

	if err := os.MkdirAll(n.Path, 0755); err != nil {
		n.t.Fatalf("failed to create notes directory: %v", err)
	}
	n.writeFile(n.ConfigPath, "notes_dir = "+quoteTOML(n.Path)+"\n")

	for path, content := range n.files {
		n.writeFile(filepath.Join(n.Path, path), content)
	}

	return n
}

// writeFile writes a file, creating directories as needed.
func (n *TestNotes) writeFile(fullPath, content string) {
	n.t.Helper()

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		n.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		n.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a file from the notes directory.
func (n *TestNotes) ReadFile(relPath string) string {
	n.t.Helper()
	fullPath := filepath.Join(n.Path, relPath)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		n.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the notes directory.
func (n *TestNotes) FileExists(relPath string) bool {
	n.t.Helper()
	_, err := os.Stat(filepath.Join(n.Path, relPath))
	return err == nil
}

// LegacyNote renders a note record without an id line.
func LegacyNote(title, created, body string) string {
	return "title: " + title + "\n" +
		"created: " + created + "\n" +
		"last_updated: " + created + "\n" +
		"---\n" +
		body + "\n"
}

func quoteTOML(s string) string {
	// Literal strings need no escaping as long as s has no single quote.
	return "'" + s + "'"
}
