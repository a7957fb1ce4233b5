// Package editor runs the user's text editor on a temporary file and returns
// what was saved.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/aidanlsb/rsnote/internal/shellquote"
)

// ErrNoEditor is returned when no editor command is configured.
var ErrNoEditor = errors.New("no editor configured")

// Session describes one editor invocation. Nil streams default to the
// process's own stdin, stdout and stderr.
type Session struct {
	Command string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// Edit writes initial to a temporary file, runs the editor on it in the
// foreground and returns the saved content. A final newline added by the
// editor is dropped unless initial already ended with one.
func (s Session) Edit(ctx context.Context, initial string) (string, error) {
	if strings.TrimSpace(s.Command) == "" {
		return "", ErrNoEditor
	}

	f, err := os.CreateTemp("", "rsnote-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	cmd := command(ctx, s.Command, path)
	cmd.Stdin = orReader(s.Stdin, os.Stdin)
	cmd.Stdout = orWriter(s.Stdout, os.Stdout)
	cmd.Stderr = orWriter(s.Stderr, os.Stderr)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %q failed: %w", CommandName(s.Command), err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	content := string(data)
	if !strings.HasSuffix(initial, "\n") {
		if strings.HasSuffix(content, "\r\n") {
			content = content[:len(content)-2]
		} else {
			content = strings.TrimSuffix(content, "\n")
		}
	}
	return content, nil
}

// command builds the process for editor. Commands with arguments, such as
// "code --wait" or "open -a TextEdit", go through the shell.
func command(ctx context.Context, editor, path string) *exec.Cmd {
	editor = strings.TrimSpace(editor)
	if !strings.ContainsAny(editor, " \t") {
		return exec.CommandContext(ctx, editor, path)
	}
	if runtime.GOOS == "windows" {
		fields := strings.Fields(editor)
		return exec.CommandContext(ctx, fields[0], append(fields[1:], path)...)
	}
	return exec.CommandContext(ctx, "sh", "-c", editor+" "+shellquote.Quote(path))
}

// CommandName returns the executable name of an editor command line.
func CommandName(editor string) string {
	editor = strings.TrimSpace(editor)
	if editor == "" {
		return ""
	}
	var first string
	if editor[0] == '"' || editor[0] == '\'' {
		if end := strings.IndexByte(editor[1:], editor[0]); end >= 0 {
			first = editor[1 : end+1]
		}
	}
	if first == "" {
		first = strings.Fields(editor)[0]
	}
	return filepath.Base(first)
}

func orReader(r, def io.Reader) io.Reader {
	if r == nil {
		return def
	}
	return r
}

func orWriter(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
