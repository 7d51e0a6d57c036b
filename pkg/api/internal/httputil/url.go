// ABOUTME: Base URL normalization so "/v1/..." endpoint paths can be appended verbatim
// ABOUTME: A base URL whose only path is /v1 is reduced to scheme://host[:port]

package httputil

import (
	"net/url"
	"strings"
)

// NormalizeBaseURL trims trailing slashes and a sole "/v1" path segment.
// Nested paths such as "http://host/proxy/v1" are left untouched apart from
// the trailing slash.
func NormalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return ""
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Path != "/v1" {
		return baseURL
	}
	u.Path = ""
	return strings.TrimRight(u.String(), "/")
}
