package github

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// 1-39 alphanumerics or hyphens, not starting with a hyphen.
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	validRepo  = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// ParseRepoRef splits "owner/name" and validates both parts against
// GitHub's naming rules.
func ParseRepoRef(ref string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(ref), "/")
	if !ok {
		return "", "", fmt.Errorf("invalid repository %q: use owner/name", ref)
	}
	if !validOwner.MatchString(owner) {
		return "", "", fmt.Errorf("invalid repository owner %q", owner)
	}
	if !validRepo.MatchString(repo) {
		return "", "", fmt.Errorf("invalid repository name %q", repo)
	}
	return owner, repo, nil
}
