package avatar

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirLockExcludesSecondHolder(t *testing.T) {
	dir := t.TempDir()
	first := NewDirLock(dir)
	ok, err := first.TryLock()
	if err != nil || !ok {
		t.Fatalf("first TryLock = %v, %v", ok, err)
	}

	second := NewDirLock(dir)
	ok, err = second.TryLock()
	if err != nil {
		t.Fatalf("second TryLock: %v", err)
	}
	if ok {
		t.Fatal("second lock should not be acquired while the first is held")
	}

	if err := first.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, LockFileName)); !os.IsNotExist(err) {
		t.Errorf("lock file should be removed, stat err = %v", err)
	}

	ok, err = second.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock after release = %v, %v", ok, err)
	}
	_ = second.Unlock()
}

func TestDirLockUnlockWithoutLock(t *testing.T) {
	if err := NewDirLock(t.TempDir()).Unlock(); err != nil {
		t.Errorf("Unlock on an unheld lock: %v", err)
	}
}
