package httputil

import "strings"

// NextPageURL returns the target of the rel="next" entry in an RFC 8288 Link
// header value such as
//
//	<https://api.github.com/x?page=2>; rel="next", <https://api.github.com/x?page=5>; rel="last"
//
// The URL is returned as written, without validation; it may contain commas.
// ok is false when the header is empty or carries no next relation.
func NextPageURL(link string) (url string, ok bool) {
	for _, entry := range splitLinks(link) {
		entry = strings.TrimSpace(entry)
		end := strings.IndexByte(entry, '>')
		if !strings.HasPrefix(entry, "<") || end < 0 {
			continue
		}
		if hasRel(entry[end+1:], "next") {
			return entry[1:end], true
		}
	}
	return "", false
}

// splitLinks splits a Link header on the commas that separate entries,
// ignoring commas inside a <...> target.
func splitLinks(header string) []string {
	var entries []string
	start, inTarget := 0, false
	for i := 0; i < len(header); i++ {
		switch header[i] {
		case '<':
			inTarget = true
		case '>':
			inTarget = false
		case ',':
			if !inTarget {
				entries = append(entries, header[start:i])
				start = i + 1
			}
		}
	}
	return append(entries, header[start:])
}

func hasRel(params, want string) bool {
	for _, p := range strings.Split(params, ";") {
		key, value, found := strings.Cut(strings.TrimSpace(p), "=")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "rel") {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		for _, rel := range strings.Fields(value) {
			if rel == want {
				return true
			}
		}
	}
	return false
}
