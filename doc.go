// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

/*
Package rkcfg reads, edits, and writes CFG image directory files used by
firmware flashing tools. A directory is an ordered list of entries, each
holding an image name and an optional image path stored as UTF-16LE text.

Two layouts are supported:
  - loose: a 16-byte header (magic and creation time) followed by
    zero-terminated strings with opaque bytes between them; entries are
    recovered by a heuristic scanner and a two-pass name/path classifier;
  - fixed: a 29-byte header followed by a counted table of 610-byte
    records carrying name, path, flash address, and selection flag.

Bytes the package does not understand are kept verbatim: loose gaps stay
attached to their entries, header and trailing bytes of both layouts are
written back unchanged. Parsing and serializing an unedited directory
reproduces the source file byte for byte.

# Reading

	d, err := rkcfg.ReadFile("config.cfg")
	if err != nil {
	    return err
	}
	for _, e := range d.Entries() {
	    fmt.Println(e.Index, e.Name, e.Path)
	}

Layout is detected from the fixed header item size field. Force it with
ReaderOptions.Format when needed:

	d, err := rkcfg.ReadFileWithOptions("config.cfg", rkcfg.ReaderOptions{
	    Format: rkcfg.FormatLoose,
	})

# Editing

Edits address entries by index; LastIndex addresses the last entry:

	_ = d.SetPath(rkcfg.LastIndex, `Image\boot.img`)
	_, _ = d.Add("recovery", `Image\recovery.img`)
	_ = d.Delete(0)
	data, err := d.MarshalBinary()

Select entries with ordered gitignore-like rules:

	removed, err := d.DeleteMatching(rkcfg.ParseRules("*.bak", "!keep.bak"), pathrules.MatcherOptions{})

# Editor

Editor wraps file-based workflow with backup rotation and rollback:

	ed, err := rkcfg.OpenEditor("config.cfg", rkcfg.EditOptions{BackupKeep: 1})
	if err != nil {
	    return err
	}
	if err := ed.SetName(2, "uboot"); err != nil {
	    return err
	}
	res, err := ed.Commit(ctx)

Commit moves existing destination to `<file>.bak`, writes new content, and
restores backup if writing fails.
*/
package rkcfg
