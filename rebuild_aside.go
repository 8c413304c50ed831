package bb

import (
	"errors"
	"io/fs"
	"os"
)

// moveAside renames binary to binary+".old" so the compiler can write a
// new file while the old one is still running.
func moveAside(binary string) error {
	old := binary + ".old"
	if err := os.Remove(old); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(binary, old)
}

// restoreAside puts the binary moved by moveAside back, replacing
// whatever a failed rebuild left behind.
func restoreAside(binary string) error {
	old := binary + ".old"
	if _, err := os.Stat(old); err != nil {
		return err
	}
	return os.Rename(old, binary)
}

func removeAside(binary string) {
	_ = os.Remove(binary + ".old")
}
