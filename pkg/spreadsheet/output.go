package spreadsheet

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/bacoords/woo-dev-blog-tools/pkg/errors"
	"github.com/bacoords/woo-dev-blog-tools/pkg/export"
)

// Filename is the name of the CSV artifact.
const Filename = "wordpress_posts_by_category.csv"

// WriteCSV writes the pivot with every field quoted, which spreadsheet
// importers need to keep multi-line cells intact.
func WriteCSV(w io.Writer, p *Pivot) error {
	bw := bufio.NewWriter(w)
	writeRow := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(f, `"`, `""`))
			bw.WriteByte('"')
		}
		bw.WriteByte('\n')
	}

	writeRow(p.Header())
	for _, row := range p.Rows() {
		writeRow(row)
	}
	return bw.Flush()
}

// Save writes the pivot to dir/[Filename] with a UTF-8 byte-order mark and
// returns the path.
func Save(dir string, p *Pivot) (string, error) {
	path := filepath.Join(dir, Filename)
	if err := export.WriteBOMFile(path, func(w io.Writer) error { return WriteCSV(w, p) }); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "save spreadsheet %s", path)
	}
	return path, nil
}

// Render draws the pivot as a rounded terminal table.
func Render(w io.Writer, p *Pivot) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)

	header := table.Row{}
	for _, h := range p.Header() {
		header = append(header, h)
	}
	t.AppendHeader(header)

	for _, r := range p.Rows() {
		row := table.Row{}
		for _, f := range r {
			row = append(row, f)
		}
		t.AppendRow(row)
		t.AppendSeparator()
	}

	configs := []table.ColumnConfig{{Number: 1, VAlign: text.VAlignTop}}
	for i := range p.Categories {
		configs = append(configs, table.ColumnConfig{Number: i + 2, VAlign: text.VAlignTop, WidthMax: 40})
	}
	t.SetColumnConfigs(configs)
	t.Render()
}
