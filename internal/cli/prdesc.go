package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bacoords/woo-dev-blog-tools/pkg/changelog"
	"github.com/bacoords/woo-dev-blog-tools/pkg/errors"
	"github.com/bacoords/woo-dev-blog-tools/pkg/export"
)

// prDescriptionsCommand creates the pr-descriptions command.
func (c *CLI) prDescriptionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pr-descriptions <file>",
		Short: "Insert pull request descriptions into a changelog file",
		Long: `Rewrite <file> in place, inserting the "Changes proposed" paragraph of every
pull request it links below the linking line. Needs GITHUB_TOKEN.`,
		Example: `  woo-release pr-descriptions changelogs/9.9.0.txt`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			if c.cfg.Token == "" {
				printError("A GitHub token is required")
				printNextStep("Add it to .env", "GITHUB_TOKEN=<token>")
				return errors.New(errors.ErrCodeConfig, "GITHUB_TOKEN is not set")
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
			}

			gh, _, store, err := c.githubClient(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			prog := newProgress(loggerFromContext(ctx))
			a := &changelog.Augmenter{Fetch: gh.PullRequestBody, Logger: loggerFromContext(ctx)}
			updated, refs, err := a.Augment(ctx, string(content))
			if err != nil {
				return err
			}
			if refs == 0 {
				printWarning("No pull request links in %s", path)
				return nil
			}

			err = export.WriteFile(path, func(w io.Writer) error {
				_, err := io.WriteString(w, updated)
				return err
			})
			if err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
			}
			prog.done(fmt.Sprintf("Processed %d pull request references", refs))
			printSuccess("Updated %s", path)
			return nil
		},
	}
}
