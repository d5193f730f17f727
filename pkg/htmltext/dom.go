package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DOMConverter emits the same markers as [RegexConverter] from a parsed
// document, so malformed or attribute-heavy markup does not leak through.
// Script and style contents are dropped.
type DOMConverter struct{}

// Convert implements [Converter]. Input that fails to parse is returned with
// tags stripped and entities decoded.
func (DOMConverter) Convert(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return tidy(DecodeEntities(StripTags(s)))
	}

	var b strings.Builder
	for _, n := range doc.Find("body").Nodes {
		writeChildren(&b, n)
	}
	return tidy(b.String())
}

func writeChildren(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNode(b, c)
	}
}

func writeNode(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
	default:
		writeChildren(b, n)
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style:
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		b.WriteString("\n## ")
		writeChildren(b, n)
		b.WriteString("\n\n")
	case atom.P:
		writeChildren(b, n)
		b.WriteString("\n\n")
	case atom.Br:
		b.WriteString("\n")
	case atom.Li:
		b.WriteString("* ")
		writeChildren(b, n)
		b.WriteString("\n")
	case atom.A:
		href, ok := attr(n, "href")
		if !ok {
			writeChildren(b, n)
			return
		}
		b.WriteString("[")
		writeChildren(b, n)
		b.WriteString("](" + href + ")")
	default:
		writeChildren(b, n)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

var _ Converter = DOMConverter{}
