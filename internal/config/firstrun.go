package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FirstRun interactively asks where notes should live, persists the answer to
// path and creates the notes directory. A blank answer (or EOF) accepts the
// default location. It is meant to be called once, by the composition root,
// when no config file exists yet.
func FirstRun(in io.Reader, out io.Writer, path string) (*Config, error) {
	defaultDir := DefaultNotesDir()

	fmt.Fprintln(out, "Welcome to rsnote!")
	fmt.Fprintln(out, "Where would you like to store your notes?")
	fmt.Fprintf(out, "Default location: %s\n", defaultDir)
	fmt.Fprintln(out, "Press Enter to use default, or enter a custom path:")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read notes location: %w", err)
	}

	notesDir := defaultDir
	if answer := strings.TrimSpace(line); answer != "" {
		notesDir = ExpandHome(answer)
	}
	if abs, err := filepath.Abs(notesDir); err == nil {
		notesDir = abs
	}

	cfg := &Config{NotesDir: notesDir}
	if err := SaveTo(path, cfg); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(notesDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create notes directory: %w", err)
	}

	fmt.Fprintf(out, "Configuration saved. Notes will be stored in: %s\n", notesDir)
	return cfg, nil
}
