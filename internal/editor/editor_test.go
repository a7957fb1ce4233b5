package editor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestCommandName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "vim", want: "vim"},
		{name: "with args", input: "nvim -u ~/.config/nvim/init.lua", want: "nvim"},
		{name: "extra spaces", input: "  hx   ", want: "hx"},
		{name: "quoted path", input: "\"/Applications/Helix.app/Contents/MacOS/hx\" --config foo", want: "hx"},
		{name: "open app", input: "open -a Cursor", want: "open"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommandName(tt.input); got != tt.want {
				t.Fatalf("CommandName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// fakeEditor writes a shell script that behaves like an editor.
func fakeEditor(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script editors are not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-editor")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEdit(t *testing.T) {
	t.Run("returns saved content", func(t *testing.T) {
		ed := fakeEditor(t, `printf 'written by editor\n' > "$1"`)
		got, err := Session{Command: ed}.Edit(context.Background(), "")
		if err != nil {
			t.Fatalf("Edit: %v", err)
		}
		if got != "written by editor" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("keeps trailing newline of original", func(t *testing.T) {
		ed := fakeEditor(t, `printf 'more\n' >> "$1"`)
		got, err := Session{Command: ed}.Edit(context.Background(), "first\n")
		if err != nil {
			t.Fatalf("Edit: %v", err)
		}
		if got != "first\nmore\n" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("unchanged file", func(t *testing.T) {
		ed := fakeEditor(t, `exit 0`)
		got, err := Session{Command: ed}.Edit(context.Background(), "as is")
		if err != nil {
			t.Fatalf("Edit: %v", err)
		}
		if got != "as is" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("command with arguments", func(t *testing.T) {
		ed := fakeEditor(t, `printf '%s' "$1" > "$2"`)
		got, err := Session{Command: ed + " hello"}.Edit(context.Background(), "")
		if err != nil {
			t.Fatalf("Edit: %v", err)
		}
		if got != "hello" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("editor failure", func(t *testing.T) {
		ed := fakeEditor(t, `echo boom >&2; exit 3`)
		var stderr strings.Builder
		_, err := Session{Command: ed, Stderr: &stderr}.Edit(context.Background(), "")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(stderr.String(), "boom") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("no editor", func(t *testing.T) {
		if _, err := (Session{}).Edit(context.Background(), ""); !errors.Is(err, ErrNoEditor) {
			t.Errorf("err = %v, want ErrNoEditor", err)
		}
	})
}
