package changelog

import (
	"regexp"
	"strings"

	"github.com/bacoords/woo-dev-blog-tools/pkg/htmltext"
)

const (
	proposedHeading = "Changes proposed in this Pull Request:"
	testingHeading  = "How to test the changes in this Pull Request:"
)

var paragraphPattern = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(proposedHeading) + `.*?(?:\n\n|$)`)

// ExtractChangesProposed returns the cleaned "Changes proposed" section of a
// pull request description, as stored in the changelog CSV.
//
// Markup is stripped and entities decoded first. The section runs from the
// heading to the line holding the testing heading, or the end of text. Blank lines and
// single-line HTML comments are dropped, and the remaining lines are trimmed.
// The result is "" when the heading is absent.
func ExtractChangesProposed(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = htmltext.DecodeEntities(htmltext.StripTags(text))

	_, after, found := strings.Cut(text, proposedHeading)
	if !found {
		return ""
	}
	section, _, cut := strings.Cut(after, testingHeading)
	if cut {
		// Drop the whole heading line, including markdown markers such as "###".
		section = section[:strings.LastIndexByte(section, '\n')+1]
	}

	var kept []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || (strings.HasPrefix(line, "<!--") && strings.HasSuffix(line, "-->")) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// ExtractChangesParagraph returns the "Changes proposed" heading and the text
// that follows it up to the first blank line, trimmed. Markup is kept as is.
// The result is "" when the heading is absent.
func ExtractChangesParagraph(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	return strings.TrimSpace(paragraphPattern.FindString(text))
}
