package spreadsheet

import (
	"context"
	stderrors "errors"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bacoords/woo-dev-blog-tools/pkg/errors"
	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations"
	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations/wordpress"
)

const (
	// DefaultWindow is how far back posts are fetched.
	DefaultWindow = 365 * 24 * time.Hour

	// DefaultPageSize matches what the public API serves without
	// authentication.
	DefaultPageSize = 10
)

// Site is the part of the WordPress API the aggregator reads.
// *wordpress.Client implements it.
type Site interface {
	Posts(ctx context.Context, params url.Values) (*wordpress.Page, error)
	CategoryNames(ctx context.Context, ids []int) (map[int]string, error)
}

// Aggregator builds the posts-by-category pivot of one site.
type Aggregator struct {
	Site     Site
	Now      func() time.Time
	Window   time.Duration
	PageSize int
	Logger   *log.Logger
}

// NewAggregator creates an aggregator over the last year using the wall
// clock. A nil logger uses log.Default().
func NewAggregator(site Site, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.Default()
	}
	return &Aggregator{
		Site:     site,
		Now:      time.Now,
		Window:   DefaultWindow,
		PageSize: DefaultPageSize,
		Logger:   logger,
	}
}

// Run fetches the posts and builds the pivot. It fails with NOTHING_FOUND
// when the window holds no posts.
func (a *Aggregator) Run(ctx context.Context) (*Pivot, error) {
	posts, err := a.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, errors.New(errors.ErrCodeNothingFound, "no posts found since %s", a.since().Format("2006-01-02"))
	}
	a.Logger.Info("fetched posts", "count", len(posts))

	ids := categoryIDs(posts)
	names, err := a.Site.CategoryNames(ctx, ids)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if stderrors.Is(err, integrations.ErrRateLimited) {
			return nil, integrations.Coded(err, "resolve category names")
		}
		a.Logger.Warn("could not resolve category names, using ids", "err", err)
		names = map[int]string{}
	}

	p := Build(posts, names)
	if p.Skipped > 0 {
		a.Logger.Warn("posts with unusable dates left out", "count", p.Skipped)
	}
	return p, nil
}

// Fetch returns every post published inside the window. The first page
// reports the page count; a later page that fails is logged and skipped.
func (a *Aggregator) Fetch(ctx context.Context) ([]wordpress.Post, error) {
	first, err := a.Site.Posts(ctx, a.params(1))
	if err != nil {
		return nil, integrations.Coded(err, "fetch posts")
	}
	posts := append([]wordpress.Post(nil), first.Posts...)

	for page := 2; page <= first.TotalPages; page++ {
		a.Logger.Info("fetching page", "page", page, "of", first.TotalPages)
		next, err := a.Site.Posts(ctx, a.params(page))
		if err != nil {
			if ctx.Err() != nil || stderrors.Is(err, integrations.ErrRateLimited) {
				return nil, integrations.Coded(err, "fetch posts page %d", page)
			}
			a.Logger.Warn("skipping page", "page", page, "err", err)
			continue
		}
		posts = append(posts, next.Posts...)
	}
	return posts, nil
}

func (a *Aggregator) since() time.Time {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	window := a.Window
	if window <= 0 {
		window = DefaultWindow
	}
	return now().Add(-window)
}

func (a *Aggregator) params(page int) url.Values {
	size := a.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	return url.Values{
		"per_page": {strconv.Itoa(size)},
		"page":     {strconv.Itoa(page)},
		"after":    {a.since().Format(wordpress.DateLayout)},
		"_fields":  {"title,date,categories"},
	}
}

func categoryIDs(posts []wordpress.Post) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, p := range posts {
		for _, id := range p.Categories {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Ints(ids)
	return ids
}
