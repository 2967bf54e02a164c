// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

import (
	"bytes"
	"fmt"
)

// LastIndex addresses the last entry in edit operations.
const LastIndex = -1

// Directory is an in-memory CFG directory: untouched prefix, ordered entries, untouched suffix.
// One Directory serves both layouts; Format selects serialization strategy.
// Directory is not safe for concurrent use.
type Directory struct {
	// header is parsed fixed header; nil for loose layout.
	header *fixedHeader
	// format is layout used for serialization.
	format Format
	// prefix holds bytes before first entry (loose header and padding, or fixed header).
	prefix []byte
	// suffix holds bytes after last entry.
	suffix []byte
	// entries are kept in source order, new entries appended.
	entries []Entry
}

// Format returns directory layout.
func (d *Directory) Format() Format {
	if d == nil {
		return ""
	}

	return d.format
}

// Len returns number of entries.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}

	return len(d.entries)
}

// Prefix returns a copy of bytes preceding the first entry.
func (d *Directory) Prefix() []byte {
	if d == nil {
		return nil
	}

	return bytes.Clone(d.prefix)
}

// Suffix returns a copy of bytes following the last entry.
func (d *Directory) Suffix() []byte {
	if d == nil {
		return nil
	}

	return bytes.Clone(d.suffix)
}

// Entries returns an ordered display view of all entries.
func (d *Directory) Entries() []EntryInfo {
	if d == nil {
		return nil
	}

	out := make([]EntryInfo, len(d.entries))
	for i := range d.entries {
		out[i] = d.entries[i].info(i)
	}

	return out
}

// Entry returns a copy of entry at index (LastIndex allowed).
func (d *Directory) Entry(index int) (Entry, error) {
	idx, err := d.Resolve(index)
	if err != nil {
		return Entry{}, err
	}

	return d.entries[idx].clone(), nil
}

// Resolve converts edit index to entry position.
// LastIndex resolves to the last entry; any other index outside [0, Len) is rejected.
func (d *Directory) Resolve(index int) (int, error) {
	if d == nil {
		return 0, ErrNilDirectory
	}

	n := len(d.entries)
	if index == LastIndex {
		if n == 0 {
			return 0, fmt.Errorf("%w: %d (directory is empty)", ErrIndexOutOfRange, index)
		}

		return n - 1, nil
	}

	if index < 0 || index >= n {
		return 0, fmt.Errorf("%w: %d (entries: %d)", ErrIndexOutOfRange, index, n)
	}

	return index, nil
}

// SetName replaces name of entry at index.
func (d *Directory) SetName(index int, name string) error {
	idx, err := d.Resolve(index)
	if err != nil {
		return err
	}

	units, err := d.entryText(name, fixedNameUnits)
	if err != nil {
		return err
	}

	d.entries[idx].Name = units
	return nil
}

// SetPath replaces image path of entry at index.
// A name-only entry gains a path string once path is non-empty.
func (d *Directory) SetPath(index int, path string) error {
	idx, err := d.Resolve(index)
	if err != nil {
		return err
	}

	units, err := d.entryText(path, fixedPathUnits)
	if err != nil {
		return err
	}

	entry := &d.entries[idx]
	entry.Path = units
	entry.pathless = entry.pathless && len(units) == 0
	return nil
}

// Add appends a new entry with empty gap and returns its index.
func (d *Directory) Add(name string, path string) (int, error) {
	if d == nil {
		return 0, ErrNilDirectory
	}

	if d.format == FormatFixed && len(d.entries) >= maxFixedEntries {
		return 0, fmt.Errorf("%w: limit %d", ErrTooManyEntries, maxFixedEntries)
	}

	nameUnits, err := d.entryText(name, fixedNameUnits)
	if err != nil {
		return 0, err
	}

	pathUnits, err := d.entryText(path, fixedPathUnits)
	if err != nil {
		return 0, err
	}

	d.entries = append(d.entries, Entry{
		Name:    nameUnits,
		Path:    pathUnits,
		Enabled: d.format == FormatLoose,
	})

	return len(d.entries) - 1, nil
}

// Delete removes entry at index together with its gap.
func (d *Directory) Delete(index int) error {
	idx, err := d.Resolve(index)
	if err != nil {
		return err
	}

	d.entries = append(d.entries[:idx], d.entries[idx+1:]...)
	return nil
}

// SetEnabled sets flash selection flag of entry at index.
// Loose layout has no flag: index is validated and the call is a no-op.
func (d *Directory) SetEnabled(index int, enabled bool) error {
	idx, err := d.Resolve(index)
	if err != nil {
		return err
	}

	if d.format == FormatFixed {
		d.entries[idx].Enabled = enabled
	}

	return nil
}

// SetAddress sets target flash address of entry at index.
// Loose layout has no address field: index is validated and the call is a no-op.
func (d *Directory) SetAddress(index int, address uint32) error {
	idx, err := d.Resolve(index)
	if err != nil {
		return err
	}

	if d.format == FormatFixed {
		d.entries[idx].Address = address
	}

	return nil
}

// entryText converts text to units, truncating to fixed field capacity for fixed layout.
func (d *Directory) entryText(text string, fixedUnits int) (Units, error) {
	units, err := UnitsFromString(text)
	if err != nil {
		return nil, err
	}

	// Fixed fields keep one unit for terminator.
	if d.format == FormatFixed && len(units) > fixedUnits-1 {
		units = units[:fixedUnits-1]
	}

	return units, nil
}

// info builds display view of entry.
func (e *Entry) info(index int) EntryInfo {
	return EntryInfo{
		Index:   index,
		Name:    e.Name.String(),
		Path:    e.Path.String(),
		GapSize: len(e.Separator) + len(e.Gap),
		Address: e.Address,
		Enabled: e.Enabled,
	}
}
