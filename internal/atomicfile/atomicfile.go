// Package atomicfile writes whole files so readers never observe a torn record.
package atomicfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrExists is returned by WriteNew when the destination is already present.
var ErrExists = errors.New("file already exists")

// WriteFile replaces path with data atomically (best-effort cross-platform).
//
// perm is used for the temp file. If perm is 0, WriteFile preserves the
// existing file's mode and otherwise falls back to 0644.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	perm = resolvePerm(path, perm)

	tmpPath, err := writeTemp(path, data, perm)
	if err != nil {
		return err
	}

	// On Windows, renaming over an existing file fails. Remove first (not atomic).
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			_ = os.Remove(tmpPath)
			return fmt.Errorf("rename temp file: %w", err)
		}
	}
	return nil
}

// WriteNew writes data to path only if path does not exist yet.
//
// The fully written temp file is hard-linked into place, so a concurrent
// writer racing for the same path gets ErrExists instead of clobbering it.
// Filesystems without hard links fall back to an O_EXCL create.
func WriteNew(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}

	tmpPath, err := writeTemp(path, data, perm)
	if err != nil {
		return err
	}
	defer os.Remove(tmpPath)

	linkErr := os.Link(tmpPath, path)
	if linkErr == nil {
		return nil
	}
	if errors.Is(linkErr, os.ErrExist) {
		return ErrExists
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return ErrExists
		}
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}

func resolvePerm(path string, perm os.FileMode) os.FileMode {
	if perm != 0 {
		return perm
	}
	if st, err := os.Stat(path); err == nil {
		return st.Mode().Perm()
	}
	return 0o644
}

// writeTemp writes data to a synced temp file next to path and returns its name.
// Temp names start with a dot so directory scans treat them as hidden.
func writeTemp(path string, data []byte, perm os.FileMode) (string, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	fail := func(format string, err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf(format, err)
	}

	// Best-effort; some platforms/filesystems may not support chmod here.
	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return fail("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return tmpPath, nil
}
