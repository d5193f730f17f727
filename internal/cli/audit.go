package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bacoords/woo-dev-blog-tools/pkg/errors"
)

// auditCommand creates the audit command, which fetches or checks the data a
// release review needs.
func (c *CLI) auditCommand() *cobra.Command {
	var (
		fetchChangelog bool
		fetchPosts     bool
		check          bool
		version        string
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Fetch or check everything a release review needs",
		Long: `Fetch the release posts and the changelog of a version in one go, or check
which of them are already on disk.`,
		Example: `  woo-release audit --fetch-changelog --fetch-posts --version 9.9.0
  woo-release audit --check --version 9.9.0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !fetchChangelog && !fetchPosts && !check {
				if err := cmd.Help(); err != nil {
					return err
				}
				printQuickStart()
				return nil
			}

			if version == "" && (fetchChangelog || check) {
				v, err := c.askVersion()
				if err != nil {
					return err
				}
				version = v
			}
			if version != "" {
				if err := errors.ValidateVersion(version); err != nil {
					return err
				}
				version = strings.TrimSpace(version)
			}

			if check {
				res := checkArtifacts(c.cfg.Output.ChangelogDir, c.cfg.Output.PostsDir, version)
				printCheck(res)
				if !res.complete() {
					return errors.New(errors.ErrCodeNotFound, "release data for %s is incomplete", version)
				}
				return nil
			}

			return c.runAudit(ctx, version, fetchPosts, fetchChangelog)
		},
	}

	cmd.Flags().BoolVar(&fetchChangelog, "fetch-changelog", false, "fetch the changelog of --version")
	cmd.Flags().BoolVar(&fetchPosts, "fetch-posts", false, "fetch release posts from the developer blog")
	cmd.Flags().BoolVar(&check, "check", false, "check which data files exist")
	cmd.Flags().StringVar(&version, "version", "", "WooCommerce version (e.g. 9.9.0)")

	return cmd
}

// askVersion prompts for the version, or fails when nobody can answer.
func (c *CLI) askVersion() (string, error) {
	if c.interactive == nil || !c.interactive() {
		return "", errors.New(errors.ErrCodeInvalidInput, "--version is required with --fetch-changelog or --check")
	}
	return promptVersion(os.Stdin, os.Stdout)
}

// runAudit fetches posts first, then the changelog, stopping at the first
// failure.
func (c *CLI) runAudit(ctx context.Context, version string, posts, changelog bool) error {
	if posts {
		if err := c.fetchPosts(ctx); err != nil {
			printError("Failed to fetch release posts")
			return err
		}
		printNewline()
	}
	if changelog {
		if err := c.fetchChangelog(ctx, version); err != nil {
			printError("Failed to fetch changelog")
			return err
		}
		printNewline()
	}

	res := checkArtifacts(c.cfg.Output.ChangelogDir, c.cfg.Output.PostsDir, version)
	printSuccess("Data fetched")
	if res.changelog != "" {
		printKeyValue("Changelog", res.changelog)
	}
	if res.posts > 0 {
		printKeyValue("Posts", fmt.Sprintf("%s (%d files)", c.cfg.Output.PostsDir, res.posts))
	}
	printNewline()
	printAnalyzeSteps(version)
	return nil
}

// =============================================================================
// Artifact Check
// =============================================================================

type checkResult struct {
	version    string
	changelog  string // first existing candidate, "" if none
	postsDir   string
	posts      int
	changelogs []string // candidates tried, in order
}

func (r checkResult) complete() bool {
	return r.changelog != "" && r.posts > 0
}

// changelogCandidates lists the file names a changelog of version may have,
// in lookup order. "9.9" also matches 9.9.0 files and "9.9.0" also matches
// 9.9 files.
func changelogCandidates(dir, version string) []string {
	stems := []string{version, version + ".0", strings.TrimSuffix(version, ".0")}
	var out []string
	seen := make(map[string]bool)
	for _, ext := range []string{".csv", ".txt"} {
		for _, stem := range stems {
			p := filepath.Join(dir, stem+ext)
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

func checkArtifacts(changelogDir, postsDir, version string) checkResult {
	res := checkResult{version: version, postsDir: postsDir}
	if version != "" {
		res.changelogs = changelogCandidates(changelogDir, version)
		for _, p := range res.changelogs {
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				res.changelog = p
				break
			}
		}
	}
	matches, _ := filepath.Glob(filepath.Join(postsDir, "*.txt"))
	res.posts = len(matches)
	return res
}

func printCheck(res checkResult) {
	printInfo("Checking data files for %s", StyleHighlight.Render(res.version))
	printNewline()

	status := func(ok bool) string {
		if ok {
			return markDone.label("found")
		}
		return markFailed.label("missing")
	}

	changelog := res.changelog
	if changelog == "" {
		changelog = "—"
	}
	postsCol := "—"
	if res.posts > 0 {
		postsCol = fmt.Sprintf("%s (%d files)", res.postsDir, res.posts)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Data", "Status", "Location").
		Row("Changelog", status(res.changelog != ""), changelog).
		Row("Release posts", status(res.posts > 0), postsCol).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(stdout, t.Render())
	printNewline()

	if res.changelog == "" {
		printNextStep("Fetch the changelog", "woo-release changelog "+res.version)
	}
	if res.posts == 0 {
		printNextStep("Fetch release posts", "woo-release posts")
	}
	if res.complete() {
		printSuccess("Data ready")
		printAnalyzeSteps(res.version)
	}
}

func printAnalyzeSteps(version string) {
	if version == "" {
		version = "<version>"
	}
	printInfo("Analyze with:")
	printNextStep("  Full thematic analysis", "/woocommerce-pr-analyzer "+version)
	printNextStep("  Quick relevance scoring", "/woocommerce-release-comms "+version)
	printNextStep("  Add PR descriptions to a text changelog", "woo-release pr-descriptions <file>")
}

func printQuickStart() {
	printNewline()
	fmt.Fprintln(stdout, StyleTitle.Render("Quick start"))
	printNewline()
	printNextStep("1. Fetch data", "woo-release audit --fetch-changelog --fetch-posts --version 9.9.0")
	printNextStep("2. Check what is on disk", "woo-release audit --check --version 9.9.0")
	printNextStep("3. Analyze", "/woocommerce-pr-analyzer 9.9.0")
}
