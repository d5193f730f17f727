package wordpress

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bacoords/woo-dev-blog-tools/pkg/errors"
	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations"
)

// DateLayout is the format of [Post.Date].
const DateLayout = "2006-01-02T15:04:05"

// Client reads one WordPress site.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a client for the REST root apiURL, for example
// https://developer.woocommerce.com/wp-json/wp/v2.
func NewClient(hc *integrations.Client, apiURL string) *Client {
	return &Client{Client: hc, baseURL: strings.TrimRight(apiURL, "/")}
}

// Categories lists categories matching params.
func (c *Client) Categories(ctx context.Context, params url.Values) ([]Category, error) {
	var cats []Category
	if _, err := c.GetJSON(ctx, c.baseURL+"/categories", params, "", &cats); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// FindCategory returns the category whose name equals name exactly,
// scanning a single page of 100.
func (c *Client) FindCategory(ctx context.Context, name string) (*Category, error) {
	cats, err := c.Categories(ctx, url.Values{"per_page": {"100"}})
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cats))
	for i, cat := range cats {
		if cat.Name == name {
			return &cat, nil
		}
		names[i] = cat.Name
	}
	return nil, errors.Wrap(errors.ErrCodeNotFound,
		&errors.NotFoundError{Kind: "category", Name: name, Available: names},
		"could not find %q category", name)
}

// CategoryNames resolves ids to names in one request. Ids the site does not
// return are absent from the map.
func (c *Client) CategoryNames(ctx context.Context, ids []int) (map[int]string, error) {
	names := make(map[int]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	params := url.Values{
		"include":  {strings.Join(parts, ",")},
		"per_page": {"100"},
	}
	cats, err := c.Categories(ctx, params)
	if err != nil {
		return nil, err
	}
	for _, cat := range cats {
		names[cat.ID] = cat.Name
	}
	return names, nil
}

// Posts fetches one page of posts. TotalPages comes from the X-WP-TotalPages
// header and defaults to 1 when missing or malformed.
func (c *Client) Posts(ctx context.Context, params url.Values) (*Page, error) {
	var posts []Post
	resp, err := c.GetJSON(ctx, c.baseURL+"/posts", params, "", &posts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	total, err := strconv.Atoi(resp.Header("X-WP-TotalPages"))
	if err != nil || total < 1 {
		total = 1
	}
	return &Page{Posts: posts, TotalPages: total}, nil
}

// ParseDate parses a post date. Dates with a zone suffix ("Z" or an
// offset) are accepted too.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
