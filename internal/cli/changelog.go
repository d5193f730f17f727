package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bacoords/woo-dev-blog-tools/pkg/changelog"
	"github.com/bacoords/woo-dev-blog-tools/pkg/errors"
	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations/github"
)

// changelogCommand creates the changelog command.
func (c *CLI) changelogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "changelog <version>",
		Short: "Save the changelog of a release as CSV",
		Long: `Save the changelog of a WooCommerce release to changelogs/<version>.csv.

The release section of the trunk readme is used when it exists. Otherwise the
closed pull requests of the GitHub milestone named <version> are collected,
which needs GITHUB_TOKEN in .env or the environment.`,
		Example: `  woo-release changelog 9.9.0`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.fetchChangelog(cmd.Context(), args[0])
		},
	}
}

// fetchChangelog runs the changelog pipeline for version and saves the
// result.
func (c *CLI) fetchChangelog(ctx context.Context, version string) error {
	if err := errors.ValidateVersion(version); err != nil {
		return err
	}
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	gh, hc, store, err := c.githubClient(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	trunkURL := c.cfg.GitHub.TrunkURL
	p := changelog.NewPipeline(func(ctx context.Context) (string, error) {
		return github.FetchTrunk(ctx, hc, trunkURL)
	}, gh, logger)
	p.SentinelLabel = c.cfg.GitHub.SentinelLabel

	printInfo("Fetching changelog for %s", StyleHighlight.Render(version))
	res, err := p.Run(ctx, version)
	if err != nil {
		reportChangelogError(err, version)
		return err
	}

	path, err := changelog.Save(c.cfg.Output.ChangelogDir, version, res.Entries)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Saved %d entries", len(res.Entries)))

	switch res.Origin {
	case changelog.OriginTrunk:
		printSuccess("Changelog taken from the trunk readme")
	default:
		printSuccess("Changelog built from milestone %s", StyleHighlight.Render(res.Milestone.Title))
		printDetail("%d pull requests", res.Stats.PullRequests)
		if res.Stats.Degraded > 0 {
			printWarning("%d pull requests have no description", res.Stats.Degraded)
		}
	}
	printFile(path)
	return nil
}

// reportChangelogError prints the diagnostics that go with a pipeline failure.
func reportChangelogError(err error, version string) {
	var nf *errors.NotFoundError
	switch {
	case errors.Is(err, errors.ErrCodeConfig):
		printError("A GitHub token is required to look up milestone %s", version)
		printNextStep("Add it to .env", "GITHUB_TOKEN=<token>")
	case stderrors.As(err, &nf):
		printError("No milestone titled %q", version)
		if len(nf.Available) > 0 {
			printDetail("Available milestones:")
			for _, title := range nf.Available {
				printDetail("  %s", title)
			}
		}
		if s, ok := github.SuggestTitle(version, nf.Available); ok {
			printNextStep("Did you mean", "woo-release changelog "+s)
		}
	case errors.Is(err, errors.ErrCodeNothingFound):
		printWarning("Nothing found for %s, no file written", version)
	case errors.Is(err, errors.ErrCodeRateLimited):
		printError("GitHub rate limit still exceeded after retrying")
	}
}
