package service

import (
	"fmt"
	"net/url"
	"strings"
)

const placeholderURL = "https://via.placeholder.com/400x300/f3f4f6/6b7280?text=%s"

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ResolvePublicURL turns a stored object path into its public URL. Values
// that are already absolute URLs come back unchanged and an empty path
// resolves to "".
func ResolvePublicURL(baseURL, bucket, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if isAbsoluteURL(path) {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + bucket + "/" + strings.TrimLeft(path, "/")
}

// StoragePathFromURL recovers the object path from a stored URL built by
// ResolvePublicURL. It returns "" for external URLs that do not point into
// bucket.
func StoragePathFromURL(bucket, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !isAbsoluteURL(raw) {
		return strings.TrimLeft(raw, "/")
	}

	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}

	marker := "/" + bucket + "/"
	if i := strings.Index(raw, marker); i >= 0 {
		return raw[i+len(marker):]
	}
	return ""
}

// PlaceholderURL is the grey tile shown for missing or broken media.
func PlaceholderURL(title string) string {
	return fmt.Sprintf(placeholderURL, encodeURIComponent(title))
}

// withUnsplashParams asks images.unsplash.com for a cropped, auto-format
// rendition. Params the URL already carries are left alone.
func withUnsplashParams(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host != "images.unsplash.com" {
		return raw
	}
	q := u.Query()
	for k, v := range map[string]string{"auto": "format", "fit": "crop", "q": "80"} {
		if q.Get(k) == "" {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// encodeURIComponent escapes s the way browsers do for a query value.
func encodeURIComponent(s string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	return strings.NewReplacer(
		"%21", "!",
		"%27", "'",
		"%28", "(",
		"%29", ")",
		"%2A", "*",
	).Replace(escaped)
}
