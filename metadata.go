// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

import (
	"fmt"
	"os"
)

// ListOptions configures quick entry listing.
type ListOptions struct {
	// PathPrefix keeps entries whose image path is under this directory (case-insensitive).
	PathPrefix string `json:"path_prefix,omitempty" yaml:"path_prefix,omitempty"`
	// Reader options are used to parse source.
	Reader ReaderOptions `json:"reader,omitzero" yaml:"reader,omitempty"`
	// SkipNameOnly drops entries without image path.
	SkipNameOnly bool `json:"skip_name_only,omitempty" yaml:"skip_name_only,omitempty"`
	// EnabledOnly drops entries with cleared flash selection flag.
	EnabledOnly bool `json:"enabled_only,omitempty" yaml:"enabled_only,omitempty"`
}

// ListEntries opens a CFG file and returns its entries.
func ListEntries(path string) ([]EntryInfo, error) {
	return ListEntriesWithOptions(path, ListOptions{})
}

// ListEntriesWithOptions opens a CFG file and returns its entries filtered by list options.
func ListEntriesWithOptions(path string, opts ListOptions) ([]EntryInfo, error) {
	d, err := ReadFileWithOptions(path, opts.Reader)
	if err != nil {
		return nil, err
	}

	return filterEntryList(d.Entries(), opts), nil
}

// filterEntryList applies list options to entry view.
func filterEntryList(entries []EntryInfo, opts ListOptions) []EntryInfo {
	entries = filterEntriesByPrefix(entries, opts.PathPrefix)
	if opts.SkipNameOnly {
		entries = filterEntriesWithPath(entries)
	}
	if opts.EnabledOnly {
		entries = filterEntriesEnabled(entries)
	}

	return entries
}

// ReadFormat detects layout of CFG file by path the same way ReadFile selects it.
func ReadFormat(path string) (Format, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read CFG: %w", err)
	}

	return DetectFormat(buf)
}
