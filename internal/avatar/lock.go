//go:build !windows

package avatar

import (
	"os"
	"path/filepath"
	"syscall"
)

// LockFileName is created inside the output directory while a run owns it.
const LockFileName = ".avatars.lock"

// DirLock keeps two fetch runs from writing into the same directory at once.
type DirLock struct {
	path string
	file *os.File
}

// NewDirLock creates a lock for outDir. Nothing is touched until TryLock.
func NewDirLock(outDir string) *DirLock {
	return &DirLock{path: filepath.Join(outDir, LockFileName)}
}

// TryLock takes the lock without blocking. It reports false when another
// process holds it.
func (l *DirLock) TryLock() (bool, error) {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return false, err
	}

	err = syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if err != nil {
		f.Close()
		if err == syscall.EWOULDBLOCK {
			return false, nil
		}
		return false, err
	}

	l.file = f
	return true, nil
}

// Unlock releases the lock and removes the lock file.
func (l *DirLock) Unlock() error {
	if l.file == nil {
		return nil
	}
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		l.file.Close()
		return err
	}
	name := l.file.Name()
	l.file.Close()
	l.file = nil
	os.Remove(name)
	return nil
}
