// Package export writes the flat-file artifacts produced by woo-release.
//
// Files are written to a temporary sibling first and renamed into place, so
// an interrupted run leaves the previous artifact intact instead of a
// truncated one. CSV artifacts meant for spreadsheet applications carry a
// UTF-8 byte-order mark.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// WriteFile creates the parent directory of path if needed, streams the
// output of write into a temporary file and renames it over path.
// Any existing file at path is replaced.
func WriteFile(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// WriteBOMFile is [WriteFile] with a UTF-8 byte-order mark in front of the
// content.
func WriteBOMFile(path string, write func(w io.Writer) error) error {
	return WriteFile(path, func(w io.Writer) error {
		bw := NewBOMWriter(w)
		if err := write(bw); err != nil {
			return err
		}
		return bw.Close()
	})
}

// NewBOMWriter returns a writer that prefixes everything written to w with a
// UTF-8 byte-order mark. Close flushes it; w itself is not closed.
func NewBOMWriter(w io.Writer) io.WriteCloser {
	return transform.NewWriter(struct{ io.Writer }{w}, unicode.UTF8BOM.NewEncoder())
}
