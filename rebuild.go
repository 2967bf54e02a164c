// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

// serializeLoose rebuilds loose layout: prefix, then for every entry name, separator,
// path and gap, then suffix. Names and paths are re-encoded with a terminator; all other
// bytes are copied verbatim. Entries are never reordered.
func serializeLoose(d *Directory) []byte {
	out := make([]byte, 0, looseSizeHint(d))
	out = append(out, d.prefix...)

	for i := range d.entries {
		entry := &d.entries[i]
		out = writeTerminated(out, entry.Name)
		out = append(out, entry.Separator...)

		// Reconstructed name-only entries had no path string; emitting an empty one
		// would shift their gap on the next read.
		if !entry.pathless || len(entry.Path) != 0 {
			out = writeTerminated(out, entry.Path)
		}

		out = append(out, entry.Gap...)
	}

	return append(out, d.suffix...)
}

// looseSizeHint returns exact serialized size of loose directory.
func looseSizeHint(d *Directory) int {
	size := len(d.prefix) + len(d.suffix)
	for i := range d.entries {
		entry := &d.entries[i]
		size += terminatedSize(entry.Name) + len(entry.Separator) + len(entry.Gap)
		if !entry.pathless || len(entry.Path) != 0 {
			size += terminatedSize(entry.Path)
		}
	}

	return size
}
