package bb

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// Shift removes and returns the first element of args.
func Shift(args *[]string) (string, bool) {
	if len(*args) == 0 {
		return "", false
	}
	first := (*args)[0]
	*args = (*args)[1:]
	return first, true
}

// ParseReferenceTime decodes the reference-time variable: Unix time in
// nanoseconds.
func ParseReferenceTime(v string) (time.Time, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("reference time %q: %w", v, err)
	}
	return time.Unix(0, n), nil
}

// FormatReferenceTime is the inverse of ParseReferenceTime.
func FormatReferenceTime(t time.Time) string {
	return strconv.FormatInt(t.UnixNano(), 10)
}

// ParseBool accepts strconv.ParseBool's forms plus yes/no, on/off and y/n,
// as used by the modify-all switch.
func ParseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "on", "y":
		return true, nil
	case "no", "off", "n":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(v))
}

// CopyFile copies src to dst, creating or truncating dst. Failure is fatal.
func (c *Context) CopyFile(src, dst string) {
	if err := copyFile(src, dst); err != nil {
		c.Raise(FILE_COPY_FAILED, src, dst, err)
	}
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = io.Copy(out, in)
	return err
}

// ReadFile returns the contents of path. Failure is fatal.
func (c *Context) ReadFile(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		c.Raise(FILE_READ_FAILED, path, err)
	}
	return data
}

// WriteFile replaces the contents of path. Failure is fatal.
func (c *Context) WriteFile(path string, data []byte) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.Raise(FILE_WRITE_FAILED, path, err)
	}
}

// Glob returns the files matching pattern in lexical order. Besides the
// filepath.Match syntax, ** matches any number of directories and {a,b}
// matches alternatives. A malformed pattern is fatal.
func (c *Context) Glob(pattern string) []string {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		c.Raise(GLOB_FAILED, pattern, err)
	}
	sort.Strings(matches)
	return matches
}
