package ml

import (
	"regexp"
	"strings"
)

// Recipe image lists arrive as one comma-joined string whose URLs may
// themselves contain commas, so a plain strings.Split corrupts them. A URL
// boundary is only a comma that is immediately followed by the next http(s)
// scheme.
var imageBoundary = regexp.MustCompile(`,\s*["']?https?://`)

// SplitImageURLs splits a comma-joined image string into individual URLs,
// trimming whitespace and any wrapping quotes.
func SplitImageURLs(images string) []string {
	if strings.TrimSpace(images) == "" {
		return nil
	}

	var parts []string
	rest := images
	for {
		loc := imageBoundary.FindStringIndex(rest)
		if loc == nil {
			parts = append(parts, rest)
			break
		}
		parts = append(parts, rest[:loc[0]])
		// Keep the scheme that the boundary match consumed.
		rest = strings.TrimLeft(rest[loc[0]+1:], " \t")
	}

	urls := make([]string, 0, len(parts))
	for _, part := range parts {
		cleaned := strings.Trim(strings.TrimSpace(part), `"'`)
		cleaned = strings.TrimSpace(cleaned)
		if cleaned != "" {
			urls = append(urls, cleaned)
		}
	}
	return urls
}

// FirstImageURL returns the first usable image URL, or nil when none exists.
func FirstImageURL(images string) *string {
	urls := SplitImageURLs(images)
	for _, u := range urls {
		if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
			return &u
		}
	}
	return nil
}
