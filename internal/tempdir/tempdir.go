// Package tempdir provides a scoped temporary directory guard for OCR
// scratch files.
//
// A Dir is acquired for one unit of work and released on every exit path,
// typically with defer. Files worth retaining are moved out with Keep
// before the release runs, so cleanup never deletes a file mid-move.
package tempdir

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Dir is a temporary directory with guaranteed cleanup.
type Dir struct {
	path     string
	released bool
}

// New creates a temporary directory under parent. An empty parent uses
// the system default.
func New(parent string) (*Dir, error) {
	path, err := os.MkdirTemp(parent, "processor-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory path.
func (d *Dir) Path() string { return d.path }

// Join returns the path of name inside the directory.
func (d *Dir) Join(name string) string {
	return filepath.Join(d.path, name)
}

// Keep moves the named file out of the directory into dstDir, creating
// dstDir if needed. The move completes synchronously: once Keep returns,
// Release cannot touch the retained file.
func (d *Dir) Keep(name, dstDir string) error {
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("create retention dir %s: %w", dstDir, err)
	}
	src := d.Join(name)
	dst := filepath.Join(dstDir, name)
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	// Rename fails across filesystems; fall back to copy + remove.
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// Release removes the directory and everything still inside it. It is
// idempotent and safe on a nil Dir.
func (d *Dir) Release() {
	if d == nil || d.released {
		return
	}
	d.released = true
	os.RemoveAll(d.path)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
