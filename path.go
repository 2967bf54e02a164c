// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

import "strings"

// NormalizePath converts an image path to slash-separated form used for matching and filtering.
// Both "/" and "\" separate segments; empty and "." segments are dropped and ".." removes
// the previous segment. Leading and trailing separators are not kept, so `.\Image\boot.img`
// and "Image/boot.img" normalize equally. Drive prefixes such as "C:" stay as first segment.
func NormalizePath(raw string) string {
	segments := strings.FieldsFunc(strings.TrimSpace(raw), isPathSeparator)

	out := segments[:0]
	for _, segment := range segments {
		switch segment {
		case ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, segment)
		}
	}

	return strings.Join(out, "/")
}

// isPathSeparator reports whether r separates image path segments.
func isPathSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// pathKey returns case-insensitive comparison key of image path.
func pathKey(raw string) string {
	return strings.ToLower(NormalizePath(raw))
}

// normalizePathForMatching prepares a rule pattern for matcher use.
// Leading "/" is kept because it anchors gitignore-like patterns.
func normalizePathForMatching(pattern string) string {
	pattern = strings.TrimSpace(pattern)
	pattern = strings.ReplaceAll(pattern, `\`, "/")
	return strings.TrimPrefix(pattern, "./")
}

// entryMatchPath returns normalized path used to match entry against selection rules.
// Name-only entries are matched by name.
func entryMatchPath(entry *Entry) string {
	if len(entry.Path) != 0 {
		return NormalizePath(entry.Path.String())
	}

	return NormalizePath(entry.Name.String())
}
