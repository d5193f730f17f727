package posts

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bacoords/woo-dev-blog-tools/pkg/errors"
	"github.com/bacoords/woo-dev-blog-tools/pkg/export"
	"github.com/bacoords/woo-dev-blog-tools/pkg/htmltext"
	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations"
	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations/wordpress"
)

// Site is the part of the WordPress API the collector reads.
// *wordpress.Client implements it.
type Site interface {
	FindCategory(ctx context.Context, name string) (*wordpress.Category, error)
	Posts(ctx context.Context, params url.Values) (*wordpress.Page, error)
}

// Collector saves the posts of one category as text files.
type Collector struct {
	Site      Site
	Dir       string
	Category  string
	SkipTerms []string
	Converter htmltext.Converter
	Logger    *log.Logger
}

// Report lists the file names a run touched.
type Report struct {
	Saved      []string
	Existing   []string // present before the run
	Filtered   []string // matched a skip term or had an unusable date
	Collisions []string // same name as a post saved earlier in the run
}

// NewCollector creates a collector writing to dir with the default category
// and skip terms and the regex converter. A nil logger uses log.Default().
func NewCollector(site Site, dir string, logger *log.Logger) *Collector {
	if logger == nil {
		logger = log.Default()
	}
	return &Collector{
		Site:      site,
		Dir:       dir,
		Category:  DefaultCategory,
		SkipTerms: DefaultSkipTerms,
		Converter: htmltext.RegexConverter{},
		Logger:    logger,
	}
}

// Run fetches the newest page of posts in the category and writes every
// post that is neither filtered nor already on disk.
//
// The destination is listed once before anything is written. When two posts
// derive the same file name, the first one (the newest) is kept and the
// other is reported as a collision.
func (c *Collector) Run(ctx context.Context) (*Report, error) {
	cat, err := c.Site.FindCategory(ctx, c.Category)
	if err != nil {
		return nil, integrations.Coded(err, "find category %q", c.Category)
	}
	c.Logger.Debug("found category", "name", cat.Name, "id", cat.ID)

	page, err := c.Site.Posts(ctx, url.Values{
		"categories": {strconv.Itoa(cat.ID)},
		"per_page":   {"100"},
		"orderby":    {"date"},
		"order":      {"desc"},
	})
	if err != nil {
		return nil, integrations.Coded(err, "list posts of %q", c.Category)
	}
	c.Logger.Info("fetched release posts", "count", len(page.Posts))

	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create %s", c.Dir)
	}
	existing, err := snapshot(c.Dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "list %s", c.Dir)
	}

	report := &Report{}
	written := make(map[string]bool)
	for _, wp := range page.Posts {
		post := c.convert(wp)
		name, err := post.Filename()
		if err != nil {
			c.Logger.Warn("skipping post with unusable date", "title", post.Title, "date", post.Date)
			report.Filtered = append(report.Filtered, post.Title)
			continue
		}

		switch {
		case c.skip(Sanitize(post.Title)):
			c.Logger.Info("skipping filtered post", "file", name)
			report.Filtered = append(report.Filtered, name)
		case existing[name]:
			c.Logger.Debug("already downloaded", "file", name)
			report.Existing = append(report.Existing, name)
		case written[name]:
			c.Logger.Warn("another post in this run has the same file name, keeping the first", "file", name, "link", post.Link)
			report.Collisions = append(report.Collisions, name)
		default:
			path := filepath.Join(c.Dir, name)
			err := export.WriteFile(path, func(w io.Writer) error {
				_, err := io.WriteString(w, post.Envelope())
				return err
			})
			if err != nil {
				return report, errors.Wrap(errors.ErrCodeIO, err, "save post %s", name)
			}
			written[name] = true
			report.Saved = append(report.Saved, name)
			c.Logger.Info("saved post", "file", name)
		}
	}
	return report, nil
}

func (c *Collector) convert(wp wordpress.Post) ReleasePost {
	conv := c.Converter
	if conv == nil {
		conv = htmltext.RegexConverter{}
	}
	return ReleasePost{
		Title: htmltext.DecodeEntities(wp.Title.Rendered),
		Date:  wp.Date,
		Link:  wp.Link,
		Body:  conv.Convert(wp.Content.Rendered),
	}
}

func (c *Collector) skip(sanitized string) bool {
	for _, term := range c.SkipTerms {
		if term != "" && strings.Contains(sanitized, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func snapshot(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names[e.Name()] = true
		}
	}
	return names, nil
}
