// Package uriutil groups the path and URI helpers shared by the extension
// implementations: element-name normalization for per-element content
// directories, parent resolution, and scheme coercion.
package uriutil

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-slug"
)

// NormalizeName converts a definition, operation, or security scheme name
// into the directory/file-safe form used to resolve per-element content.
// Normalization is slug-based so names stay stable across platforms.
func NormalizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		return fallbackNormalize(trimmed)
	}
	return normalized
}

func fallbackNormalize(name string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// Parent returns a copy of u with the last path segment removed, keeping a
// trailing slash so the result resolves as a directory.
func Parent(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	parent := *u
	p := strings.TrimSuffix(u.Path, "/")
	if idx := strings.LastIndex(p, "/"); idx >= 0 {
		parent.Path = p[:idx+1]
	} else {
		parent.Path = "/"
	}
	return &parent
}

// ParseLocation parses raw into a URL, coercing scheme-less values to the
// file scheme with an absolute path. Relative filesystem paths are resolved
// against the working directory.
func ParseLocation(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "" {
		return u, nil
	}
	abs, err := filepath.Abs(raw)
	if err != nil {
		return nil, err
	}
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}, nil
}

// Resolve returns a copy of base with the given path segments appended.
func Resolve(base *url.URL, segments ...string) *url.URL {
	if base == nil {
		return nil
	}
	resolved := *base
	parts := append([]string{resolved.Path}, segments...)
	resolved.Path = path.Join(parts...)
	// A host-qualified URL needs a rooted path or String() renders it
	// malformed (path.Join drops the slash when the base path is empty).
	if resolved.Host != "" && !strings.HasPrefix(resolved.Path, "/") {
		resolved.Path = "/" + resolved.Path
	}
	return &resolved
}

// IsFile reports whether the URI points at the local filesystem.
func IsFile(u *url.URL) bool {
	return u != nil && (u.Scheme == "" || u.Scheme == "file")
}
