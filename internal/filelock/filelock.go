// Package filelock provides advisory file locking so that separate taskline
// processes do not interleave load-modify-save cycles on the same data file.
package filelock

import "os"

const lockFileMode = 0o600

// Suffix is appended to a data file path to name its lock file.
const Suffix = ".lock"

// PathFor returns the lock file path guarding dataFile.
func PathFor(dataFile string) string {
	return dataFile + Suffix
}

// Lock acquires an exclusive advisory lock on the file at path,
// creating it if it does not exist. The returned function releases
// the lock and must be called when the critical section is done.
//
// Only one process can hold the lock at a time; other callers block
// until the lock is available.
func Lock(path string) (unlock func() error, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock file path from trusted source
	if err != nil {
		return nil, err
	}

	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, err
	}

	return func() error {
		unlockErr := unlockFile(f)
		closeErr := f.Close()
		if unlockErr != nil {
			return unlockErr
		}
		return closeErr
	}, nil
}
