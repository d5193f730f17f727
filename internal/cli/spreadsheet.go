package cli

import (
	"github.com/spf13/cobra"

	"github.com/bacoords/woo-dev-blog-tools/pkg/errors"
	"github.com/bacoords/woo-dev-blog-tools/pkg/spreadsheet"
)

// spreadsheetCommand creates the spreadsheet command.
func (c *CLI) spreadsheetCommand() *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "spreadsheet",
		Short: "Export a year of blog posts by month and category",
		Long: `Export the titles of every post published on the developer blog in the last
365 days to exports/wordpress_posts_by_category.csv, one row per month and one
column per category.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			agg := spreadsheet.NewAggregator(c.wordpressClient(ctx), loggerFromContext(ctx))

			spinner := newSpinnerWithContext(ctx, "Fetching posts...")
			spinner.Start()
			pivot, err := agg.Run(ctx)
			spinner.Stop()
			if err != nil {
				if errors.Is(err, errors.ErrCodeNothingFound) {
					printWarning("No posts found. Nothing written.")
					return nil
				}
				return err
			}
			if pivot.Empty() {
				printWarning("No categorised posts found. Nothing written.")
				return nil
			}

			if preview {
				spreadsheet.Render(stdout, pivot)
				printNewline()
			}

			path, err := spreadsheet.Save(c.cfg.Output.ExportsDir, pivot)
			if err != nil {
				return err
			}
			printSuccess("Exported %d months across %d categories", len(pivot.Months), len(pivot.Categories))
			printFile(path)
			printNewline()
			printDetail("When importing into Excel use Data > From Text/CSV with UTF-8 (65001) encoding")
			printDetail("and double quotes as the text qualifier.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "also print the table to the terminal")
	return cmd
}
