package github

import "encoding/json"

// Milestone is a release target grouping issues and pull requests.
type Milestone struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// User is the author of an issue.
type User struct {
	Login string `json:"login"`
}

// Label is an issue label.
type Label struct {
	Name string `json:"name"`
}

// Issue is an item of the issues endpoint; pull requests carry a
// pull_request object.
type Issue struct {
	Number      int              `json:"number"`
	Title       string           `json:"title"`
	HTMLURL     string           `json:"html_url"`
	User        User             `json:"user"`
	Labels      []Label          `json:"labels"`
	PullRequest *json.RawMessage `json:"pull_request,omitempty"`
}

// IsPullRequest reports whether the issue represents a pull request.
func (i Issue) IsPullRequest() bool {
	return i.PullRequest != nil
}

type pullResponse struct {
	Body *string `json:"body"`
}
