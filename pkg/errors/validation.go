package errors

import (
	"regexp"
	"strings"
)

// versionPattern accepts release identifiers like "10", "9.9", "9.9.0" and
// "10.0.0-rc.1". Milestone titles are matched exactly, so a bare major
// version is allowed.
var versionPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+){0,3}(-[0-9A-Za-z.]+)?$`)

// ValidateVersion checks that version looks like a release number.
//
// The version ends up in file names (changelogs/<version>.csv) and in the
// milestone lookup, so anything containing path separators is rejected.
func ValidateVersion(version string) error {
	version = strings.TrimSpace(version)
	if version == "" {
		return New(ErrCodeInvalidInput, "version cannot be empty")
	}
	if strings.ContainsAny(version, `/\`) || strings.Contains(version, "..") {
		return New(ErrCodeInvalidInput, "version contains invalid characters: %q", version)
	}
	if !versionPattern.MatchString(version) {
		return New(ErrCodeInvalidInput, "invalid version %q (expected e.g. 9.9.0)", version)
	}
	return nil
}
