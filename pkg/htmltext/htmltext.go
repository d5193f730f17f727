// Package htmltext turns rendered HTML (WordPress post bodies, pull request
// descriptions) into plain text.
//
// Conversion goes through the [Converter] interface. [RegexConverter] is the
// default and works by ordered text substitution; [DOMConverter] produces the
// same markers from a parsed tree and can replace it without touching
// callers.
package htmltext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Converter converts an HTML fragment to plain text.
type Converter interface {
	Convert(s string) string
}

// New returns the converter registered under name ("regex" or "dom").
// Unknown names get the regex converter.
func New(name string) Converter {
	if name == "dom" {
		return DOMConverter{}
	}
	return RegexConverter{}
}

var (
	tagPattern      = regexp.MustCompile(`<[^>]*>`)
	newlineRunRegex = regexp.MustCompile(`\n{3,}`)
)

// StripTags removes every markup tag, keeping the text between them.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// DecodeEntities decodes named and numeric character references.
func DecodeEntities(s string) string {
	return html.UnescapeString(s)
}

// tidy collapses runs of three or more newlines to two and trims the result.
func tidy(s string) string {
	return strings.TrimSpace(newlineRunRegex.ReplaceAllString(s, "\n\n"))
}
