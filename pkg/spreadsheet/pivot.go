package spreadsheet

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bacoords/woo-dev-blog-tools/pkg/htmltext"
	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations/wordpress"
)

// MonthLayout formats row labels, e.g. "January 2025".
const MonthLayout = "January 2006"

type cell struct {
	category string
	month    time.Time
}

// Pivot holds post titles by category and month.
type Pivot struct {
	Categories []string    // column order, sorted by name
	Months     []time.Time // row order, first day of each month, ascending
	Skipped    int         // posts whose date could not be parsed

	titles map[cell][]string
}

// Build groups posts by month and category. names maps category ids to
// names; ids missing from it are labelled "Category <id>". Titles are
// entity-decoded and kept in input order within a cell.
func Build(posts []wordpress.Post, names map[int]string) *Pivot {
	p := &Pivot{titles: make(map[cell][]string)}
	cats := make(map[string]bool)
	months := make(map[time.Time]bool)

	for _, post := range posts {
		t, err := wordpress.ParseDate(post.Date)
		if err != nil {
			p.Skipped++
			continue
		}
		month := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		title := htmltext.DecodeEntities(post.Title.Rendered)

		for _, id := range post.Categories {
			name, ok := names[id]
			if !ok {
				name = fmt.Sprintf("Category %d", id)
			}
			k := cell{name, month}
			p.titles[k] = append(p.titles[k], title)
			cats[name] = true
			months[month] = true
		}
	}

	for c := range cats {
		p.Categories = append(p.Categories, c)
	}
	sort.Strings(p.Categories)
	for m := range months {
		p.Months = append(p.Months, m)
	}
	sort.Slice(p.Months, func(i, j int) bool { return p.Months[i].Before(p.Months[j]) })
	return p
}

// Titles returns the titles filed under category in the month containing
// month.
func (p *Pivot) Titles(category string, month time.Time) []string {
	m := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return p.titles[cell{category, m}]
}

// Empty reports whether the pivot has no cells.
func (p *Pivot) Empty() bool {
	return len(p.titles) == 0
}

// Header returns "Month" followed by the category names.
func (p *Pivot) Header() []string {
	return append([]string{"Month"}, p.Categories...)
}

// Rows returns one row per month: the month label, then the titles of each
// category joined with newlines.
func (p *Pivot) Rows() [][]string {
	rows := make([][]string, 0, len(p.Months))
	for _, m := range p.Months {
		row := make([]string, 0, len(p.Categories)+1)
		row = append(row, m.Format(MonthLayout))
		for _, c := range p.Categories {
			row = append(row, strings.Join(p.titles[cell{c, m}], "\n"))
		}
		rows = append(rows, row)
	}
	return rows
}
