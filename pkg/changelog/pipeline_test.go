package changelog

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/bacoords/woo-dev-blog-tools/pkg/errors"
	"github.com/bacoords/woo-dev-blog-tools/pkg/httputil"
	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations"
	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations/github"
)

var quiet = log.New(io.Discard)

type fakeSource struct {
	token      bool
	milestones []github.Milestone
	prs        []github.Issue
	bodies     map[int]string
	bodyErr    map[int]error
	calls      int
}

func (f *fakeSource) HasToken() bool { return f.token }

func (f *fakeSource) FindMilestone(_ context.Context, title string) (*github.Milestone, error) {
	f.calls++
	if m, ok := github.MatchMilestone(f.milestones, title); ok {
		return &m, nil
	}
	return nil, errors.Wrap(errors.ErrCodeNotFound, &errors.NotFoundError{Kind: "milestone", Name: title}, "no milestone %q", title)
}

func (f *fakeSource) ClosedPullRequests(context.Context, int) ([]github.Issue, error) {
	f.calls++
	return f.prs, nil
}

func (f *fakeSource) PullRequestBody(_ context.Context, number int) (string, error) {
	f.calls++
	if err := f.bodyErr[number]; err != nil {
		return "", err
	}
	return f.bodies[number], nil
}

func trunkOf(doc string, err error) TrunkFetcher {
	return func(context.Context) (string, error) { return doc, err }
}

func pr(number int, labels ...string) github.Issue {
	raw := json.RawMessage(`{}`)
	is := github.Issue{
		Number:      number,
		Title:       fmt.Sprintf("PR %d", number),
		HTMLURL:     fmt.Sprintf("https://github.com/woocommerce/woocommerce/pull/%d", number),
		User:        github.User{Login: "dev"},
		PullRequest: &raw,
	}
	for _, l := range labels {
		is.Labels = append(is.Labels, github.Label{Name: l})
	}
	return is
}

func TestPipelineTrunk(t *testing.T) {
	src := &fakeSource{}
	p := NewPipeline(trunkOf(trunkDoc, nil), src, quiet)

	res, err := p.Run(context.Background(), "9.8.5")
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Origin != OriginTrunk {
		t.Errorf("Origin = %q, want trunk", res.Origin)
	}
	if len(res.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(res.Entries))
	}
	want := Entry{Description: "* Fix - Older fix."}
	got := res.Entries[0]
	if got.Description != want.Description || got.ID != 0 || got.Title != "" || got.URL != "" || got.Ranking != "" {
		t.Errorf("entry = %+v, want %+v", got, want)
	}
	if src.calls != 0 {
		t.Errorf("source called %d times, want 0", src.calls)
	}
}

func TestPipelineTokenRequired(t *testing.T) {
	tests := []struct {
		name  string
		trunk TrunkFetcher
	}{
		{"marker absent", trunkOf(trunkDoc, nil)},
		{"trunk unreachable", trunkOf("", integrations.ErrNetwork)},
		{"trunk empty", trunkOf("", nil)},
		{"no trunk fetcher", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{token: false}
			p := NewPipeline(tt.trunk, src, quiet)
			_, err := p.Run(context.Background(), "10.0.0")
			if !errors.Is(err, errors.ErrCodeConfig) {
				t.Fatalf("Run() error = %v, want CONFIG_ERROR", err)
			}
			if src.calls != 0 {
				t.Errorf("source called %d times, want 0", src.calls)
			}
		})
	}
}

func TestPipelineMilestoneNotFound(t *testing.T) {
	src := &fakeSource{token: true, milestones: []github.Milestone{{Number: 1, Title: "9.9.0"}}}
	_, err := NewPipeline(nil, src, quiet).Run(context.Background(), "9.9.1")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("Run() error = %v, want NOT_FOUND", err)
	}
}

func TestPipelineNothingFound(t *testing.T) {
	src := &fakeSource{token: true, milestones: []github.Milestone{{Number: 1, Title: "9.9.0"}}}
	_, err := NewPipeline(nil, src, quiet).Run(context.Background(), "9.9.0")
	if !errors.Is(err, errors.ErrCodeNothingFound) {
		t.Fatalf("Run() error = %v, want NOTHING_FOUND", err)
	}
}

func TestPipelineEnrichment(t *testing.T) {
	src := &fakeSource{
		token:      true,
		milestones: []github.Milestone{{Number: 7, Title: "9.9.0"}},
		prs:        []github.Issue{pr(10, "Plugin: WooCommerce", "type: bug"), pr(11), pr(12)},
		bodies: map[int]string{
			10: "Changes proposed in this Pull Request:\nFix cart\nHow to test the changes in this Pull Request:\nclick",
		},
		bodyErr: map[int]error{
			11: fmt.Errorf("GET: %w", integrations.ErrNotFound),
		},
	}

	res, err := NewPipeline(nil, src, quiet).Run(context.Background(), "9.9.0")
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Origin != OriginMilestone || res.Milestone.Number != 7 {
		t.Errorf("Origin = %q milestone = %+v", res.Origin, res.Milestone)
	}
	if len(res.Entries) != 3 {
		t.Fatalf("len(Entries) = %d, want 3", len(res.Entries))
	}

	first := res.Entries[0]
	if first.ID != 10 || first.Author != "dev" || first.Description != "Fix cart" {
		t.Errorf("first entry = %+v", first)
	}
	if strings.Join(first.Labels, "|") != "type: bug" {
		t.Errorf("Labels = %v, want [type: bug]", first.Labels)
	}
	if res.Entries[1].Description != "" {
		t.Errorf("degraded entry Description = %q, want empty", res.Entries[1].Description)
	}
	if res.Stats.PullRequests != 3 || res.Stats.Degraded != 2 {
		t.Errorf("Stats = %+v, want 3 pull requests, 2 degraded", res.Stats)
	}
}

func TestPipelineRateLimitAborts(t *testing.T) {
	src := &fakeSource{
		token:      true,
		milestones: []github.Milestone{{Number: 7, Title: "9.9.0"}},
		prs:        []github.Issue{pr(10)},
		bodyErr: map[int]error{
			10: fmt.Errorf("%w after 5 attempts: %w", httputil.ErrAttemptsExhausted, integrations.ErrRateLimited),
		},
	}
	_, err := NewPipeline(nil, src, quiet).Run(context.Background(), "9.9.0")
	if !errors.Is(err, errors.ErrCodeRateLimited) {
		t.Fatalf("Run() error = %v, want RATE_LIMITED", err)
	}
}

func TestPipelineCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &fakeSource{token: true}
	_, err := NewPipeline(trunkOf("", context.Canceled), src, quiet).Run(ctx, "9.9.0")
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

// TestPipelineGitHub runs the milestone path against a fake GitHub API:
// three closed issues of which two are pull requests.
func TestPipelineGitHub(t *testing.T) {
	r := chi.NewRouter()
	var server *httptest.Server
	r.Get("/trunk/readme.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, trunkDoc)
	})
	r.Get("/repos/{owner}/{repo}/milestones", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]github.Milestone{{Number: 3, Title: "9.7.0"}, {Number: 42, Title: "10.0.0"}})
	})
	r.Get("/repos/{owner}/{repo}/issues", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			json.NewEncoder(w).Encode([]github.Issue{pr(3, "plugin: woocommerce")})
			return
		}
		if got := r.URL.Query().Get("milestone"); got != "42" {
			t.Errorf("milestone = %q, want 42", got)
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/woocommerce/woocommerce/issues?page=2>; rel="next"`, server.URL))
		plain := github.Issue{Number: 2, Title: "an issue"}
		json.NewEncoder(w).Encode([]github.Issue{pr(1, "focus: checkout"), plain})
	})
	r.Get("/repos/{owner}/{repo}/pulls/{number}", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		n := chi.URLParam(r, "number")
		fmt.Fprintf(w, `{"body":"Changes proposed in this Pull Request:\r\nChange %s\r\n"}`, n)
	})
	server = httptest.NewServer(r)
	defer server.Close()

	hc := integrations.NewClient(integrations.Options{
		Headers: github.Headers(),
		Logger:  quiet,
		Retry:   httputil.Policy{Attempts: 1, Sleep: func(context.Context, time.Duration) error { return nil }},
	})
	gh, err := github.NewClient(hc, server.URL, "woocommerce/woocommerce", "tok")
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	gh.SetLogger(quiet)
	trunk := func(ctx context.Context) (string, error) {
		return github.FetchTrunk(ctx, hc, server.URL+"/trunk/readme.txt")
	}

	res, err := NewPipeline(trunk, gh, quiet).Run(context.Background(), "10.0.0")
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(res.Entries))
	}
	for i, want := range []string{"Change 1", "Change 3"} {
		e := res.Entries[i]
		if e.Description != want {
			t.Errorf("Entries[%d].Description = %q, want %q", i, e.Description, want)
		}
		if e.Ranking != "" {
			t.Errorf("Entries[%d].Ranking = %q, want empty", i, e.Ranking)
		}
	}
	if len(res.Entries[1].Labels) != 0 {
		t.Errorf("sentinel label kept: %v", res.Entries[1].Labels)
	}
}
