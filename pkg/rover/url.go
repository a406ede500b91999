package rover

import (
	"regexp"
	"strings"
)

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

// WithScheme trims whitespace and defaults the scheme to http://. The rest
// of the URL is kept as typed. An empty input stays empty.
func WithScheme(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" || schemeRe.MatchString(u) {
		return u
	}
	return "http://" + u
}

// NormalizeURL is WithScheme with one trailing slash stripped, for device
// base URLs that request paths are appended to.
func NormalizeURL(raw string) string {
	return strings.TrimSuffix(WithScheme(raw), "/")
}
