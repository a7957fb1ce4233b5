package index

import (
	"fmt"
	"os"
	"path/filepath"
)

// Lock is an exclusive advisory lock on the index directory.
type Lock struct {
	file *os.File
}

// AcquireRebuildLock takes the rebuild lock without blocking. It returns
// ErrIndexLocked when another process holds it. In-memory databases have no
// directory and always get a no-op lock.
func (d *Database) AcquireRebuildLock() (*Lock, error) {
	if d.dir == "" {
		return &Lock{}, nil
	}

	lockPath := filepath.Join(d.dir, lockFile)
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open index lock: %w", err)
	}

	if err := lockFileExclusiveNonBlocking(f); err != nil {
		f.Close()
		if isWouldBlockError(err) {
			return nil, ErrIndexLocked
		}
		return nil, fmt.Errorf("failed to acquire index lock: %w", err)
	}
	return &Lock{file: f}, nil
}

// Release unlocks and closes the lock file.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := unlockFile(l.file)
	closeErr := l.file.Close()
	l.file = nil
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
