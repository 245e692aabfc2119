// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package pathfilter

import (
	"path"
	"strings"
)

// splitCandidate converts a candidate path to root-relative clean form
// and reports whether it denotes a directory (trailing "/").
func splitCandidate(raw string) (string, bool) {
	if strings.Contains(raw, `\`) {
		raw = strings.ReplaceAll(raw, `\`, `/`)
	}

	isDir := strings.HasSuffix(raw, "/")
	return normalizePath(raw), isDir
}

// normalizePath normalizes matching path to slash-separated relative clean form.
func normalizePath(raw string) string {
	raw = strings.TrimPrefix(raw, "/")
	raw = strings.TrimSuffix(raw, "/")
	if raw == "" {
		return ""
	}

	// Fast path for walker-produced paths.
	if isSimpleNormalizedPath(raw) {
		return raw
	}

	raw = path.Clean("/" + raw)
	raw = strings.TrimPrefix(raw, "/")
	if raw == "." {
		return ""
	}

	return raw
}

// CleanCandidate validates user-supplied path input and returns it in
// candidate form: "/"-rooted, "/"-separated, with the trailing "/" kept.
// Paths escaping the root with ".." are rejected with ErrPathOutsideRoot.
func CleanCandidate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.ReplaceAll(trimmed, `\`, `/`)
	trimmed = strings.TrimPrefix(trimmed, "./")
	if trimmed == "" || trimmed == "." || trimmed == "/" {
		return "", ErrPathOutsideRoot
	}

	isDir := strings.HasSuffix(trimmed, "/")
	rel := strings.Trim(trimmed, "/")
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return "", ErrPathOutsideRoot
		}
	}

	rel = normalizePath(rel)
	if rel == "" {
		return "", ErrPathOutsideRoot
	}

	if isDir {
		return "/" + rel + "/", nil
	}

	return "/" + rel, nil
}

// asciiLower converts only ASCII A-Z to a-z and leaves all other bytes unchanged.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}

			return string(b)
		}
	}

	return s
}

// isSimpleNormalizedPath reports whether path is already normalized enough to skip path.Clean.
func isSimpleNormalizedPath(p string) bool {
	if p == "." || p == ".." ||
		strings.HasPrefix(p, "/") ||
		strings.HasSuffix(p, "/") ||
		strings.HasPrefix(p, "./") ||
		strings.HasPrefix(p, "../") ||
		strings.Contains(p, "//") ||
		strings.Contains(p, "/./") ||
		strings.Contains(p, "/../") ||
		strings.HasSuffix(p, "/.") ||
		strings.HasSuffix(p, "/..") {
		return false
	}

	return true
}
