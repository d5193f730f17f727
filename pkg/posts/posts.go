// Package posts downloads WooCommerce release announcements from the
// developer blog into plain-text files, one per post.
//
// Each file is named <YYYY-MM-DD>-<sanitized title>.txt and holds a short
// header (title, date, link) followed by the post body converted to text.
// Files already present in the destination are never rewritten, so repeated
// runs only add new posts.
package posts

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations/wordpress"
)

// DefaultCategory is the blog category holding release announcements.
const DefaultCategory = "Release Posts"

// DefaultSkipTerms filters posts that are not regular release notes.
var DefaultSkipTerms = []string{"woocommerce-blocks", "delayed", "dot-release"}

var (
	unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}-]`)
	separators  = regexp.MustCompile(`[-\s\p{Z}]+`)
)

// Sanitize turns a title into a filename fragment: punctuation is removed,
// runs of whitespace and hyphens become one hyphen, and the result is
// lower-cased without leading or trailing hyphens. Sanitize(Sanitize(s)) ==
// Sanitize(s).
func Sanitize(title string) string {
	s := unsafeChars.ReplaceAllString(title, "")
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(strings.ToLower(s), "-")
}

// ReleasePost is a downloaded announcement.
type ReleasePost struct {
	Title string // entities decoded
	Date  string // as returned by the API
	Link  string
	Body  string // plain text
}

// Filename derives the file name from the publish date and title.
func (p ReleasePost) Filename() (string, error) {
	t, err := wordpress.ParseDate(p.Date)
	if err != nil {
		return "", fmt.Errorf("post %q: %w", p.Title, err)
	}
	return t.Format("2006-01-02") + "-" + Sanitize(p.Title) + ".txt", nil
}

// Envelope renders the file content.
func (p ReleasePost) Envelope() string {
	return fmt.Sprintf("Title: %s\nDate: %s\nLink: %s\n\nContent:\n%s", p.Title, p.Date, p.Link, p.Body)
}
