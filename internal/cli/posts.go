package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bacoords/woo-dev-blog-tools/pkg/errors"
	"github.com/bacoords/woo-dev-blog-tools/pkg/posts"
)

// postsCommand creates the posts command.
func (c *CLI) postsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "Download release announcements as text files",
		Long: `Download the posts of the "Release Posts" category of the developer blog into
release-posts/, one text file per post. Files that already exist are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.fetchPosts(cmd.Context())
		},
	}
}

// fetchPosts runs the post collector with the configured site and filters.
func (c *CLI) fetchPosts(ctx context.Context) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	col := posts.NewCollector(c.wordpressClient(ctx), c.cfg.Output.PostsDir, logger)
	col.Category = c.cfg.WordPress.ReleaseCategory
	col.SkipTerms = c.cfg.WordPress.SkipTerms
	col.Converter = c.converter()

	printInfo("Fetching %s from %s", StyleHighlight.Render(col.Category), c.cfg.WordPress.SiteURL)
	report, err := col.Run(ctx)
	if err != nil {
		var nf *errors.NotFoundError
		if stderrors.As(err, &nf) {
			printError("Could not find %q category", col.Category)
		}
		return err
	}
	prog.done(fmt.Sprintf("Processed %d posts", len(report.Saved)+len(report.Existing)+len(report.Filtered)+len(report.Collisions)))

	printSuccess("Saved %d new posts", len(report.Saved))
	for _, name := range report.Saved {
		printFile(name)
	}
	if n := len(report.Existing); n > 0 {
		printDetail("%d already downloaded", n)
	}
	if n := len(report.Filtered); n > 0 {
		printDetail("%d filtered", n)
	}
	for _, name := range report.Collisions {
		printWarning("Skipped a second post named %s", name)
	}
	return nil
}
