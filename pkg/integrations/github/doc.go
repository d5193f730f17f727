// Package github reads release data from the GitHub REST API.
//
// # Usage
//
//	hc := integrations.NewClient(integrations.Options{Headers: github.Headers()})
//	client, err := github.NewClient(hc, github.DefaultAPIURL, "woocommerce/woocommerce", token)
//	if err != nil {
//	    return err
//	}
//
//	ms, err := client.FindMilestone(ctx, "9.9.0")
//	prs, err := client.ClosedPullRequests(ctx, ms.Number)
//	body, err := client.PullRequestBody(ctx, prs[0].Number)
//
// # Milestones and pull requests
//
// Milestones are listed as a single page of 100; a repository with more
// milestones hides the rest. Closed issues of a milestone are paginated by
// following the Link header. GitHub reports pull requests through the issues
// endpoint too, and [Issue.IsPullRequest] tells them apart.
//
// # Trunk readme
//
// [FetchTrunk] downloads the plugin readme.txt without authentication. It is
// served from raw.githubusercontent.com rather than the API.
//
// # Authentication
//
// Pass an empty token for anonymous access (60 requests/hour). Milestone
// lookups in the changelog pipeline always require one.
package github
