package index

import (
	"net/url"
	"path/filepath"
	"strings"
)

// NormalizeURI maps file URIs and plain paths to a cleaned file system path.
// Other URI schemes are returned unchanged.
func NormalizeURI(uri string) string {
	switch {
	case strings.HasPrefix(uri, "file://"):
		if u, err := url.Parse(uri); err == nil && u.Path != "" {
			return filepath.Clean(u.Path)
		}
		return filepath.Clean(strings.TrimPrefix(uri, "file://"))
	case strings.HasPrefix(uri, "file:"):
		return filepath.Clean(strings.TrimPrefix(uri, "file:"))
	case strings.Contains(uri, ":") && !filepath.IsAbs(uri):
		return uri
	}
	return filepath.Clean(uri)
}

func PathToURI(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
