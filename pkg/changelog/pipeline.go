package changelog

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bacoords/woo-dev-blog-tools/pkg/errors"
	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations"
	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations/github"
)

// DefaultSentinelLabel is attached to every WooCommerce core pull request and
// carries no information in a changelog.
const DefaultSentinelLabel = "plugin: woocommerce"

// TrunkFetcher downloads the trunk readme.
type TrunkFetcher func(ctx context.Context) (string, error)

// Source is the slice of the GitHub API the pipeline reads.
// *github.Client implements it.
type Source interface {
	HasToken() bool
	FindMilestone(ctx context.Context, title string) (*github.Milestone, error)
	ClosedPullRequests(ctx context.Context, milestone int) ([]github.Issue, error)
	PullRequestBody(ctx context.Context, number int) (string, error)
}

// Pipeline resolves the entries of one release.
type Pipeline struct {
	Trunk         TrunkFetcher // nil skips the trunk lookup
	Source        Source
	SentinelLabel string
	Logger        *log.Logger
}

// Result is the outcome of [Pipeline.Run].
type Result struct {
	Entries   []Entry
	Origin    Origin
	Milestone *github.Milestone // nil for trunk results
	Stats     Stats
}

// Stats counts what the milestone path did.
type Stats struct {
	PullRequests int
	Degraded     int // pull requests whose description could not be fetched
	Duration     time.Duration
}

// NewPipeline creates a pipeline with the default sentinel label.
// A nil logger uses log.Default().
func NewPipeline(trunk TrunkFetcher, src Source, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		Trunk:         trunk,
		Source:        src,
		SentinelLabel: DefaultSentinelLabel,
		Logger:        logger,
	}
}

// Run returns the entries for version. Nothing is written.
//
// Errors carry a code from pkg/errors: CONFIG_ERROR when the milestone path
// is needed without a token, NOT_FOUND for an unknown milestone,
// NOTHING_FOUND for a milestone without closed pull requests, RATE_LIMITED
// when retries ran out and NETWORK_ERROR for other upstream failures.
func (p *Pipeline) Run(ctx context.Context, version string) (*Result, error) {
	start := time.Now()

	if section, ok := p.fromTrunk(ctx, version); ok {
		p.Logger.Info("found release section in trunk readme", "version", version, "bytes", len(section))
		return &Result{
			Entries: []Entry{{Description: section}},
			Origin:  OriginTrunk,
			Stats:   Stats{Duration: time.Since(start)},
		}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if p.Source == nil || !p.Source.HasToken() {
		return nil, errors.New(errors.ErrCodeConfig,
			"GITHUB_TOKEN is required to look up milestone %s (set it in .env or the environment)", version)
	}

	m, err := p.Source.FindMilestone(ctx, version)
	if err != nil {
		return nil, integrations.Coded(err, "find milestone %s", version)
	}
	p.Logger.Info("found milestone", "title", m.Title, "number", m.Number)

	prs, err := p.Source.ClosedPullRequests(ctx, m.Number)
	if err != nil {
		return nil, integrations.Coded(err, "collect pull requests of milestone %s", m.Title)
	}
	if len(prs) == 0 {
		return nil, errors.New(errors.ErrCodeNothingFound, "nothing found: milestone %s has no closed pull requests", m.Title)
	}
	p.Logger.Info("collected pull requests", "count", len(prs))

	res := &Result{Origin: OriginMilestone, Milestone: m}
	res.Entries = make([]Entry, 0, len(prs))
	for i, pr := range prs {
		e, err := p.enrich(ctx, pr)
		if err != nil {
			return nil, err
		}
		if e.Description == "" {
			res.Stats.Degraded++
		}
		res.Entries = append(res.Entries, e)
		p.Logger.Debug("enriched pull request", "number", pr.Number, "progress", fmt.Sprintf("%d/%d", i+1, len(prs)))
	}
	res.Stats.PullRequests = len(prs)
	res.Stats.Duration = time.Since(start)
	return res, nil
}

func (p *Pipeline) fromTrunk(ctx context.Context, version string) (string, bool) {
	if p.Trunk == nil {
		return "", false
	}
	doc, err := p.Trunk(ctx)
	if err != nil {
		p.Logger.Warn("trunk readme unavailable, falling back to milestone", "err", err)
		return "", false
	}
	if doc == "" {
		p.Logger.Warn("trunk readme is empty, falling back to milestone")
		return "", false
	}
	section, ok := SliceSection(doc, version)
	if !ok {
		p.Logger.Info("version not in trunk readme, falling back to milestone", "marker", strings.TrimSpace(Marker(version)))
	}
	return section, ok
}

// enrich builds the entry of pr. Only rate-limit exhaustion and cancellation
// are fatal; other fetch failures leave the description empty.
func (p *Pipeline) enrich(ctx context.Context, pr github.Issue) (Entry, error) {
	e := Entry{
		ID:     pr.Number,
		Title:  pr.Title,
		Author: pr.User.Login,
		Labels: p.labels(pr.Labels),
		URL:    pr.HTMLURL,
	}

	body, err := p.Source.PullRequestBody(ctx, pr.Number)
	switch {
	case err == nil:
		e.Description = ExtractChangesProposed(body)
	case ctx.Err() != nil:
		return Entry{}, ctx.Err()
	case stderrors.Is(err, integrations.ErrRateLimited):
		return Entry{}, errors.Wrap(errors.ErrCodeRateLimited, err, "fetch pull request #%d", pr.Number)
	default:
		p.Logger.Warn("could not fetch pull request description", "number", pr.Number, "err", err)
	}
	return e, nil
}

func (p *Pipeline) labels(ls []github.Label) []string {
	names := make([]string, 0, len(ls))
	for _, l := range ls {
		if p.SentinelLabel != "" && strings.EqualFold(l.Name, p.SentinelLabel) {
			continue
		}
		names = append(names, l.Name)
	}
	return names
}
