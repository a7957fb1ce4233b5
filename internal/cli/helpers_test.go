package cli

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rsnote/internal/config"
	"github.com/aidanlsb/rsnote/internal/note"
)

var captureStdoutMu sync.Mutex

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	os.Stdout = w

	outputCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		var buf bytes.Buffer
		_, copyErr := io.Copy(&buf, r)
		_ = r.Close()
		if copyErr != nil {
			errCh <- copyErr
			return
		}
		outputCh <- buf.String()
	}()

	fn()

	os.Stdout = orig
	_ = w.Close()
	select {
	case err := <-errCh:
		t.Fatalf("io.Copy: %v", err)
		return ""
	case output := <-outputCh:
		return output
	}
}

// useTestStore installs a fresh store and resets CLI globals after the test.
func useTestStore(t *testing.T) *note.Store {
	t.Helper()

	s, err := note.Open(t.TempDir())
	if err != nil {
		t.Fatalf("note.Open: %v", err)
	}

	prevStore, prevCfg, prevJSON, prevStdin := store, cfg, jsonOutput, stdin
	store = s
	cfg = &config.Config{}
	jsonOutput = false
	stdin = strings.NewReader("")
	t.Cleanup(func() {
		s.Close()
		store, cfg, jsonOutput, stdin = prevStore, prevCfg, prevJSON, prevStdin
	})
	return s
}

// setFlag sets a command flag for the duration of the test.
func setFlag(t *testing.T, cmd *cobra.Command, name, value string) {
	t.Helper()
	f := cmd.Flags().Lookup(name)
	if f == nil {
		t.Fatalf("command %s has no flag %q", cmd.Name(), name)
	}
	prev, prevChanged := f.Value.String(), f.Changed
	if err := cmd.Flags().Set(name, value); err != nil {
		t.Fatalf("set --%s: %v", name, err)
	}
	t.Cleanup(func() {
		_ = f.Value.Set(prev)
		f.Changed = prevChanged
	})
}
