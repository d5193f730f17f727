package htmltext

import "regexp"

type substitution struct {
	pattern *regexp.Regexp
	repl    string
}

// The order matters: structural markers are emitted before the generic tag
// strip would erase the elements they come from.
var substitutions = []substitution{
	{regexp.MustCompile(`(?is)<h[1-6](?:\s[^>]*)?>(.*?)</h[1-6]\s*>`), "\n## ${1}\n\n"},
	{regexp.MustCompile(`(?i)</p\s*>`), "\n\n"},
	{regexp.MustCompile(`(?i)<br(?:\s[^>]*)?/?>`), "\n"},
	{regexp.MustCompile(`(?i)<li(?:\s[^>]*)?>`), "* "},
	{regexp.MustCompile(`(?i)</li\s*>`), "\n"},
	{regexp.MustCompile(`(?is)<a\s[^>]*?href\s*=\s*["']([^"']*)["'][^>]*>(.*?)</a\s*>`), "[${2}](${1})"},
}

// RegexConverter converts HTML by ordered substitution:
//
//  1. headings h1-h6 become "\n## text\n\n"
//  2. </p> becomes a blank line
//  3. <br> becomes a newline
//  4. <li> becomes "* " and </li> a newline
//  5. anchors become [text](href)
//  6. remaining tags are stripped
//  7. entities are decoded
//  8. three or more newlines collapse to two
//  9. the result is trimmed
//
// It is not an HTML parser. Nested lists flatten to one bullet level.
type RegexConverter struct{}

// Convert implements [Converter].
func (RegexConverter) Convert(s string) string {
	for _, sub := range substitutions {
		s = sub.pattern.ReplaceAllString(s, sub.repl)
	}
	s = StripTags(s)
	s = DecodeEntities(s)
	return tidy(s)
}

var _ Converter = RegexConverter{}
