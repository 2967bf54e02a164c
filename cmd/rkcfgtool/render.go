// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/woozymasta/rkcfg"
)

// listFormat selects entry list rendering.
type listFormat string

// Supported list formats.
const (
	listTable  listFormat = "table"
	listJSON   listFormat = "json"
	listScript listFormat = "script"
)

// parseListFormat validates list format name; empty selects table.
func parseListFormat(raw string) (listFormat, error) {
	switch listFormat(raw) {
	case "", listTable:
		return listTable, nil
	case listJSON, listScript:
		return listFormat(raw), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or script)", raw)
	}
}

// jsonEntry is JSON listing record; enabled is 0 or 1.
type jsonEntry struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Index   int    `json:"index"`
	Address uint32 `json:"address,omitempty"`
	Enabled int    `json:"enabled"`
}

// renderEntries writes entries to w in format.
func renderEntries(w io.Writer, format listFormat, entries []rkcfg.EntryInfo) error {
	switch format {
	case listJSON:
		return renderJSON(w, entries)
	case listScript:
		return renderScript(w, entries)
	default:
		return renderTable(w, entries)
	}
}

// renderTable writes human readable list: index, flag, name, path.
func renderTable(w io.Writer, entries []rkcfg.EntryInfo) error {
	if _, err := fmt.Fprintf(w, "=== Entry list (%d) ===\n", len(entries)); err != nil {
		return err
	}

	for _, entry := range entries {
		if _, err := fmt.Fprintf(w, "%2d %d %s %s\n", entry.Index, enabledFlag(entry.Enabled), entry.Name, entry.Path); err != nil {
			return err
		}
	}

	return nil
}

// renderJSON writes entries as indented JSON array.
func renderJSON(w io.Writer, entries []rkcfg.EntryInfo) error {
	out := make([]jsonEntry, len(entries))
	for i, entry := range entries {
		out[i] = jsonEntry{
			Index:   entry.Index,
			Name:    entry.Name,
			Path:    entry.Path,
			Address: entry.Address,
			Enabled: enabledFlag(entry.Enabled),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// renderScript writes entries as CSV with header row.
func renderScript(w io.Writer, entries []rkcfg.EntryInfo) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "enabled", "name", "path"}); err != nil {
		return err
	}

	for _, entry := range entries {
		record := []string{
			strconv.Itoa(entry.Index),
			strconv.Itoa(enabledFlag(entry.Enabled)),
			entry.Name,
			entry.Path,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// enabledFlag returns 1 for enabled entries and 0 otherwise.
func enabledFlag(enabled bool) int {
	if enabled {
		return 1
	}

	return 0
}
