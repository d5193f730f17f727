package changelog

import "strings"

// Marker returns the text that opens the section of version in the trunk
// readme, e.g. "= 9.9.0 ". The trailing space keeps 9.9 from matching 9.9.0.
func Marker(version string) string {
	return "= " + version + " "
}

// SliceSection returns the release notes of version from the trunk readme:
// the lines after the marker line up to the next line starting with "= ",
// trimmed. ok is false when the marker does not occur.
func SliceSection(doc, version string) (section string, ok bool) {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	i := strings.Index(doc, Marker(version))
	if i < 0 {
		return "", false
	}
	nl := strings.IndexByte(doc[i:], '\n')
	if nl < 0 {
		return "", true
	}

	var lines []string
	for _, line := range strings.Split(doc[i+nl+1:], "\n") {
		if strings.HasPrefix(line, "= ") {
			break
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), true
}
