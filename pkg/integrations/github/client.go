package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/bacoords/woo-dev-blog-tools/pkg/cache"
	"github.com/bacoords/woo-dev-blog-tools/pkg/errors"
	"github.com/bacoords/woo-dev-blog-tools/pkg/httputil"
	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations"
)

// DefaultAPIURL is the public GitHub REST API root.
const DefaultAPIURL = "https://api.github.com"

const pageSize = 100

// Headers returns the default headers for API requests.
func Headers() map[string]string {
	return map[string]string{"Accept": "application/vnd.github.v3+json"}
}

// Client reads milestones, issues and pull requests of one repository.
type Client struct {
	*integrations.Client
	baseURL string
	owner   string
	repo    string
	token   string
	logger  *log.Logger
}

// NewClient creates a client for repoRef ("owner/name") on the API at
// baseURL. token may be empty for anonymous access.
func NewClient(hc *integrations.Client, baseURL, repoRef, token string) (*Client, error) {
	owner, repo, err := ParseRepoRef(repoRef)
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return &Client{
		Client:  hc,
		baseURL: baseURL,
		owner:   owner,
		repo:    repo,
		token:   token,
		logger:  log.Default(),
	}, nil
}

// SetLogger replaces the logger used for pagination diagnostics.
func (c *Client) SetLogger(l *log.Logger) {
	if l != nil {
		c.logger = l
	}
}

// Repo returns "owner/name".
func (c *Client) Repo() string { return c.owner + "/" + c.repo }

// HasToken reports whether requests are authenticated.
func (c *Client) HasToken() bool { return c.token != "" }

func (c *Client) repoURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/%s", c.baseURL, c.owner, c.repo, path)
}

// Milestones lists open and closed milestones. Only the first page of 100
// is read.
func (c *Client) Milestones(ctx context.Context) ([]Milestone, error) {
	var ms []Milestone
	params := url.Values{"state": {"all"}, "per_page": {strconv.Itoa(pageSize)}}
	if _, err := c.GetJSON(ctx, c.repoURL("milestones"), params, c.token, &ms); err != nil {
		return nil, fmt.Errorf("list milestones of %s: %w", c.Repo(), err)
	}
	return ms, nil
}

// FindMilestone returns the milestone whose title equals title exactly.
// When none matches, the error is an [errors.NotFoundError] listing every
// title that was available.
func (c *Client) FindMilestone(ctx context.Context, title string) (*Milestone, error) {
	ms, err := c.Milestones(ctx)
	if err != nil {
		return nil, err
	}
	if m, ok := MatchMilestone(ms, title); ok {
		return &m, nil
	}

	titles := make([]string, len(ms))
	for i, m := range ms {
		titles[i] = m.Title
	}
	return nil, errors.Wrap(errors.ErrCodeNotFound,
		&errors.NotFoundError{Kind: "milestone", Name: title, Available: titles},
		"no milestone titled %q in %s", title, c.Repo())
}

// MatchMilestone scans ms for a byte-exact, case-sensitive title match.
func MatchMilestone(ms []Milestone, title string) (Milestone, bool) {
	for _, m := range ms {
		if m.Title == title {
			return m, true
		}
	}
	return Milestone{}, false
}

// ClosedPullRequests collects the closed pull requests of a milestone across
// all pages. Plain issues are dropped. Pagination stops at the first page
// that is empty or does not decode as an array, or when the Link header has
// no next relation.
func (c *Client) ClosedPullRequests(ctx context.Context, milestone int) ([]Issue, error) {
	next := c.repoURL("issues")
	params := url.Values{
		"milestone": {strconv.Itoa(milestone)},
		"state":     {"closed"},
		"per_page":  {strconv.Itoa(pageSize)},
	}

	var prs []Issue
	for page := 1; next != ""; page++ {
		resp, err := c.Request(ctx, next, params, c.token)
		if err != nil {
			return nil, fmt.Errorf("list issues of milestone %d: %w", milestone, err)
		}
		if resp.Status != http.StatusOK {
			c.logger.Warn("issue listing ended early", "page", page, "status", resp.Status)
			break
		}

		var items []Issue
		if err := json.Unmarshal([]byte(resp.Body), &items); err != nil || len(items) == 0 {
			break
		}
		kept := 0
		for _, it := range items {
			if it.IsPullRequest() {
				prs = append(prs, it)
				kept++
			}
		}
		c.logger.Debug("issue page", "page", page, "items", len(items), "pull_requests", kept)

		// The next link already carries the query.
		params = nil
		next, _ = httputil.NextPageURL(resp.Header("Link"))
	}
	return prs, nil
}

// PullRequestBody returns the description of pull request number.
// A null body is returned as "". Bodies go through the client cache.
func (c *Client) PullRequestBody(ctx context.Context, number int) (string, error) {
	key := cache.Key("github", "pull", c.Repo(), strconv.Itoa(number))

	var body string
	err := c.Cached(ctx, key, &body, func() error {
		var pr pullResponse
		if _, err := c.GetJSON(ctx, c.repoURL("pulls/"+strconv.Itoa(number)), nil, c.token, &pr); err != nil {
			return fmt.Errorf("fetch pull request #%d: %w", number, err)
		}
		if pr.Body != nil {
			body = *pr.Body
		}
		return nil
	})
	return body, err
}

// FetchTrunk downloads the document at rawURL without authentication.
// Any status other than 200, 403 included, is reported as an error at once
// so the caller can fall back to the milestone without waiting.
func FetchTrunk(ctx context.Context, hc *integrations.Client, rawURL string) (string, error) {
	resp, err := hc.RequestOnce(ctx, rawURL, nil, "")
	if err != nil {
		return "", err
	}
	if resp.Status != http.StatusOK {
		return "", fmt.Errorf("%w: status %d from %s", integrations.ErrNetwork, resp.Status, rawURL)
	}
	return resp.Body, nil
}
