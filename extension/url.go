package extension

import (
	"regexp"
	"strings"
)

var (
	schemeURL     = regexp.MustCompile(`^(?:\w+:)?//(\S+)$`)
	localhostHost = regexp.MustCompile(`^localhost[:?\d]*(?:[^:?\d]\S*)?$`)
	dottedHost    = regexp.MustCompile(`^[^\s.]+\.\S{2,}$`)

	bareLocalhost = regexp.MustCompile(`^localhost(?::\d+)?(?:[/?#]\S*)?$`)
	bareDomain    = regexp.MustCompile(`^(?:[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?\.)+[A-Za-z]{2,24}(?::\d+)?(?:[/?#]\S*)?$`)
)

// IsURL reports whether s looks like a link target: a scheme-relative or
// schemed URL whose host is localhost or dotted, a bare domain ending in a
// letters-only TLD, or bare localhost with an optional port and path.
func IsURL(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	if m := schemeURL.FindStringSubmatch(s); m != nil {
		return localhostHost.MatchString(m[1]) || dottedHost.MatchString(m[1])
	}
	return bareLocalhost.MatchString(s) || bareDomain.MatchString(s)
}
