//go:build windows

package avatar

import (
	"errors"
	"os"
	"path/filepath"
)

// LockFileName is created inside the output directory while a run owns it.
const LockFileName = ".avatars.lock"

// DirLock falls back to exclusive creation of the lock file on Windows.
type DirLock struct {
	path   string
	locked bool
}

// NewDirLock creates a lock for outDir. Nothing is touched until TryLock.
func NewDirLock(outDir string) *DirLock {
	return &DirLock{path: filepath.Join(outDir, LockFileName)}
}

// TryLock takes the lock without blocking. It reports false when another
// process holds it.
func (l *DirLock) TryLock() (bool, error) {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(l.path)
		return false, err
	}
	l.locked = true
	return true, nil
}

// Unlock releases the lock and removes the lock file.
func (l *DirLock) Unlock() error {
	if !l.locked {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	l.locked = false
	return nil
}
