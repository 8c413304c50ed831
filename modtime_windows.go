//go:build windows

package bb

import (
	"os"
	"time"
)

func fileModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func touchFile(path string, t time.Time) error {
	return os.Chtimes(path, t, t)
}

// A running executable cannot be overwritten on Windows, but it can be
// renamed out of the way.
func prepareRebuild(binary string) error { return moveAside(binary) }

func restoreRebuild(binary string) error { return restoreAside(binary) }

func cleanupRebuild(binary string) { removeAside(binary) }
