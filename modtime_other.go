//go:build !windows && !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

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

func prepareRebuild(string) error { return nil }

func restoreRebuild(string) error { return nil }

func cleanupRebuild(string) {}
