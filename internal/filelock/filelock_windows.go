//go:build windows

package filelock

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/windows"
)

// retryInterval is how long to wait before polling a held lock again.
// LockFileEx is called non-blocking so a waiting process never parks an
// OS thread the Go scheduler needs.
const retryInterval = time.Millisecond

// lockedRange is the single byte every process locks.
var lockedRange = struct{ low, high uint32 }{low: 1, high: 0}

func lockFile(f *os.File) error {
	handle := windows.Handle(f.Fd())
	flags := uint32(windows.LOCKFILE_EXCLUSIVE_LOCK | windows.LOCKFILE_FAIL_IMMEDIATELY)
	for {
		err := windows.LockFileEx(handle, flags, 0, lockedRange.low, lockedRange.high, new(windows.Overlapped))
		switch {
		case err == nil:
			return nil
		case errors.Is(err, windows.ERROR_LOCK_VIOLATION):
			time.Sleep(retryInterval)
		default:
			return fmt.Errorf("locking %s: %w", f.Name(), err)
		}
	}
}

func unlockFile(f *os.File) error {
	handle := windows.Handle(f.Fd())
	if err := windows.UnlockFileEx(handle, 0, lockedRange.low, lockedRange.high, new(windows.Overlapped)); err != nil {
		return fmt.Errorf("unlocking %s: %w", f.Name(), err)
	}
	return nil
}
