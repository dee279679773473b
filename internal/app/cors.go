package app

import (
	"net/url"
	"strings"
)

// originAllowed reports whether a browser origin matches any configured
// pattern. Patterns are exact hosts ("example.com"), subdomain wildcards
// ("*.example.com") or port wildcards ("localhost:*").
func originAllowed(patterns []string, origin string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}
	for _, p := range patterns {
		if matchOriginPattern(p, host) {
			return true
		}
	}
	return false
}

func matchOriginPattern(pattern, host string) bool {
	switch {
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	default:
		return false
	}
}
