// Package pkg provides the libraries behind woo-release, a tool that gathers
// WooCommerce release data for the developer blog.
//
// # Overview
//
// Release posts are written from three kinds of local files, all produced
// from public upstream data:
//
//  1. [changelog] - Per-version changelog CSVs, taken from the trunk readme
//     when the version is already listed there, or rebuilt from the pull
//     requests of the matching GitHub milestone.
//  2. [posts] - Past release announcements from the developer blog, stored as
//     plain-text files so new posts can follow their tone.
//  3. [spreadsheet] - A month-by-category pivot of recent blog posts.
//
// # Architecture
//
//	GitHub REST API / raw readme        WordPress REST API
//	         ↓                                   ↓
//	  [integrations/github]             [integrations/wordpress]
//	         ↓                                   ↓
//	    [changelog]                    [posts]  [spreadsheet]
//	         ↓                                   ↓
//	           [export] (BOM-prefixed CSV, atomic writes)
//
// Both API clients share one [integrations.Client], which handles rate-limit
// retries ([httputil]), optional response caching ([cache]) and traffic hooks
// ([observability]).
//
// # Quick Start
//
//	cfg := config.Default()
//	hc := integrations.NewClient(integrations.Options{Logger: logger})
//	gh, _ := github.NewClient(hc, cfg.GitHub.APIURL, cfg.GitHub.Repo, token)
//
//	p := changelog.NewPipeline(func(ctx context.Context) (string, error) {
//	    return github.FetchTrunk(ctx, hc, cfg.GitHub.TrunkURL)
//	}, gh, logger)
//	res, _ := p.Run(ctx, "9.4.0")
//	path, _ := changelog.Save("changelogs", "9.4.0", res.Entries)
//
// # Supporting Packages
//
// [config] - TOML configuration with defaults, plus GITHUB_TOKEN loading.
//
// [errors] - Coded errors mapped to exit codes, and input validation.
//
// [htmltext] - HTML to plain-text conversion (regex or DOM based).
//
// [buildinfo] - Version information injected at build time.
//
// [changelog]: https://pkg.go.dev/github.com/bacoords/woo-dev-blog-tools/pkg/changelog
// [posts]: https://pkg.go.dev/github.com/bacoords/woo-dev-blog-tools/pkg/posts
// [spreadsheet]: https://pkg.go.dev/github.com/bacoords/woo-dev-blog-tools/pkg/spreadsheet
// [integrations.Client]: https://pkg.go.dev/github.com/bacoords/woo-dev-blog-tools/pkg/integrations#Client
// [httputil]: https://pkg.go.dev/github.com/bacoords/woo-dev-blog-tools/pkg/httputil
// [cache]: https://pkg.go.dev/github.com/bacoords/woo-dev-blog-tools/pkg/cache
// [observability]: https://pkg.go.dev/github.com/bacoords/woo-dev-blog-tools/pkg/observability
// [config]: https://pkg.go.dev/github.com/bacoords/woo-dev-blog-tools/pkg/config
// [errors]: https://pkg.go.dev/github.com/bacoords/woo-dev-blog-tools/pkg/errors
// [htmltext]: https://pkg.go.dev/github.com/bacoords/woo-dev-blog-tools/pkg/htmltext
// [buildinfo]: https://pkg.go.dev/github.com/bacoords/woo-dev-blog-tools/pkg/buildinfo
// [integrations/github]: https://pkg.go.dev/github.com/bacoords/woo-dev-blog-tools/pkg/integrations/github
// [integrations/wordpress]: https://pkg.go.dev/github.com/bacoords/woo-dev-blog-tools/pkg/integrations/wordpress
// [export]: https://pkg.go.dev/github.com/bacoords/woo-dev-blog-tools/pkg/export
package pkg
