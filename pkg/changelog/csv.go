package changelog

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bacoords/woo-dev-blog-tools/pkg/errors"
	"github.com/bacoords/woo-dev-blog-tools/pkg/export"
)

// Header is the first row of every changelog CSV.
var Header = []string{"ID", "Title", "Author", "Labels", "URL", "Description", "Ranking"}

// WriteCSV writes the header and one row per entry. Labels are joined with
// ", " and an ID of 0 is written as an empty field.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, e := range entries {
		id := ""
		if e.ID != 0 {
			id = strconv.Itoa(e.ID)
		}
		row := []string{id, e.Title, e.Author, strings.Join(e.Labels, ", "), e.URL, e.Description, e.Ranking}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Path returns the artifact path of version under dir.
func Path(dir, version string) string {
	return filepath.Join(dir, version+".csv")
}

// Save writes entries to <dir>/<version>.csv with a UTF-8 byte-order mark,
// replacing any previous file. It returns the path written.
func Save(dir, version string, entries []Entry) (string, error) {
	path := Path(dir, version)
	err := export.WriteBOMFile(path, func(w io.Writer) error {
		return WriteCSV(w, entries)
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "save changelog %s", path)
	}
	return path, nil
}
