// Package richtext is the root of the composer module. It only carries the
// release version; see the document, editor, extension, body, composer and
// tui packages.
package richtext

import (
	_ "embed"
	"strings"

	"golang.org/x/mod/semver"
)

//go:embed VERSION
var embeddedVersion string

// Version returns the release without the leading v, e.g. "0.1.0".
func Version() string { return strings.TrimSpace(embeddedVersion) }

// VersionTag returns the release as a git tag, e.g. "v0.1.0".
func VersionTag() string { return "v" + Version() }

// ValidVersion reports whether v is a full SemVer release string without
// the v prefix. Shorthands such as "1.2" are rejected.
func ValidVersion(v string) bool {
	if strings.HasPrefix(v, "v") || !semver.IsValid("v"+v) {
		return false
	}
	core, _, _ := strings.Cut(v, "+")
	core, _, _ = strings.Cut(core, "-")
	return strings.Count(core, ".") == 2
}
