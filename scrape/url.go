package scrape

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// normalizeURL strips the fragment and query, and removes a non-root
// trailing slash, so URLs that differ only cosmetically deduplicate
// to the same page. Returns "" for unparseable input.
func normalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	u.Fragment = ""
	u.RawQuery = ""

	s := u.String()
	if strings.HasSuffix(s, "/") && u.Path != "/" && u.Path != "" {
		s = strings.TrimSuffix(s, "/")
	}
	return s
}

// ensureTrailingSlash normalizes a base URL so relative references
// resolve under it rather than replacing its last segment.
func ensureTrailingSlash(baseURL string) string {
	if strings.HasSuffix(baseURL, "/") {
		return baseURL
	}
	return baseURL + "/"
}

// titleFromURL derives a display title from the last URL path segment:
// dashes and underscores become spaces, words are title-cased, and the
// site root becomes "Home".
func titleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "Home"
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "Home"
	}

	parts := strings.Split(path, "/")
	last := parts[len(parts)-1]
	last = strings.TrimSuffix(last, ".html")
	last = strings.ReplaceAll(last, "-", " ")
	last = strings.ReplaceAll(last, "_", " ")
	if last == "" {
		return "Home"
	}

	words := strings.Fields(last)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// sameScope reports whether a candidate URL is on the same host as the
// base and within its path prefix.
func sameScope(base *url.URL, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Host != base.Host {
		return false
	}
	prefix := base.Path
	if prefix == "/" {
		prefix = ""
	}
	prefix = strings.TrimSuffix(prefix, "/")
	return prefix == "" || u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/")
}
