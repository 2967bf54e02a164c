// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

import "strings"

// filterEntriesByPrefix keeps entries whose image path is under prefix (or equals it).
func filterEntriesByPrefix(entries []EntryInfo, prefix string) []EntryInfo {
	prefixKey := pathKey(prefix)
	if prefixKey == "" {
		return entries
	}

	out := make([]EntryInfo, 0, len(entries))
	for _, entry := range entries {
		key := pathKey(entry.Path)
		if key == prefixKey || strings.HasPrefix(key, prefixKey+"/") {
			out = append(out, entry)
		}
	}

	return out
}

// filterEntriesWithPath drops name-only entries.
func filterEntriesWithPath(entries []EntryInfo) []EntryInfo {
	out := make([]EntryInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.Path == "" {
			continue
		}

		out = append(out, entry)
	}

	return out
}

// filterEntriesEnabled keeps entries with flash selection flag set.
func filterEntriesEnabled(entries []EntryInfo) []EntryInfo {
	out := make([]EntryInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.Enabled {
			continue
		}

		out = append(out, entry)
	}

	return out
}
