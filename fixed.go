// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/go-restruct/restruct"
)

// fixedHeader is the packed header of fixed CFG layout (29 bytes).
type fixedHeader struct {
	Magic    [magicSize]byte
	Gap0     [18]byte
	Length   uint8
	Begin    uint32
	ItemSize uint16
}

// fixedItem is one packed record of fixed CFG layout (610 bytes).
type fixedItem struct {
	Size       uint16
	Name       [fixedNameUnits]uint16
	ImagePath  [fixedPathUnits]uint16
	Address    uint32
	IsSelected uint8
	Gap1       [3]byte
}

// fixedByteOrder is byte order of all fixed layout fields.
var fixedByteOrder = binary.LittleEndian

// newFixedHeader returns header for an empty fixed table.
func newFixedHeader() fixedHeader {
	hdr := fixedHeader{
		Begin:    fixedHeaderSize,
		ItemSize: fixedItemSize,
	}
	copy(hdr.Magic[:], magicTag)

	return hdr
}

// decodeFixed parses fixed layout: header, counted record table and trailing bytes.
func decodeFixed(buf []byte) (*Directory, error) {
	if err := checkMagic(buf); err != nil {
		return nil, err
	}

	if len(buf) < fixedHeaderSize {
		return nil, fmt.Errorf("%w: short fixed header (%d < %d bytes)", ErrTruncated, len(buf), fixedHeaderSize)
	}

	var hdr fixedHeader
	if err := restruct.Unpack(buf[:fixedHeaderSize], fixedByteOrder, &hdr); err != nil {
		return nil, fmt.Errorf("decode fixed header: %w", err)
	}

	if hdr.ItemSize != fixedItemSize {
		return nil, fmt.Errorf("%w: %d (want %d)", ErrUnsupportedItemSize, hdr.ItemSize, fixedItemSize)
	}

	tableEnd := fixedHeaderSize + int(hdr.Length)*fixedItemSize
	if len(buf) < tableEnd {
		return nil, fmt.Errorf("%w: %d records need %d bytes, have %d", ErrTruncated, hdr.Length, tableEnd, len(buf))
	}

	entries := make([]Entry, 0, hdr.Length)
	for off := fixedHeaderSize; off < tableEnd; off += fixedItemSize {
		item := new(fixedItem)
		if err := restruct.Unpack(buf[off:off+fixedItemSize], fixedByteOrder, item); err != nil {
			return nil, fmt.Errorf("decode fixed item at %d: %w", off, err)
		}

		if item.Size != hdr.ItemSize {
			return nil, fmt.Errorf("%w: record at %d has size %d", ErrItemSizeMismatch, off, item.Size)
		}

		entries = append(entries, Entry{
			Name:    readFixedUnits(item.Name[:]),
			Path:    readFixedUnits(item.ImagePath[:]),
			Address: item.Address,
			Enabled: item.IsSelected != 0,
			record:  item,
		})
	}

	return &Directory{
		format:  FormatFixed,
		header:  &hdr,
		prefix:  bytes.Clone(buf[:fixedHeaderSize]),
		entries: entries,
		suffix:  bytes.Clone(buf[tableEnd:]),
	}, nil
}

// encodeFixed serializes fixed layout. Source records are reused so unknown fields survive;
// name and path fields are zero-filled only when their value changed.
func encodeFixed(d *Directory) ([]byte, error) {
	if len(d.entries) > maxFixedEntries {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyEntries, len(d.entries), maxFixedEntries)
	}

	hdr := newFixedHeader()
	if d.header != nil {
		hdr = *d.header
	}
	hdr.Length = uint8(len(d.entries)) //nolint:gosec // bounded by maxFixedEntries check above

	out, err := restruct.Pack(fixedByteOrder, &hdr)
	if err != nil {
		return nil, fmt.Errorf("encode fixed header: %w", err)
	}

	for i := range d.entries {
		entry := &d.entries[i]

		var item fixedItem
		if entry.record != nil {
			item = *entry.record
		}

		item.Size = hdr.ItemSize
		item.Address = entry.Address
		if (item.IsSelected != 0) != entry.Enabled {
			item.IsSelected = 0
			if entry.Enabled {
				item.IsSelected = 1
			}
		}

		if !readFixedUnits(item.Name[:]).Equal(entry.Name) {
			writeFixedUnits(item.Name[:], entry.Name)
		}
		if !readFixedUnits(item.ImagePath[:]).Equal(entry.Path) {
			writeFixedUnits(item.ImagePath[:], entry.Path)
		}

		raw, err := restruct.Pack(fixedByteOrder, &item)
		if err != nil {
			return nil, fmt.Errorf("encode fixed item %d: %w", i, err)
		}

		out = append(out, raw...)
	}

	return append(out, d.suffix...), nil
}

// readFixedUnits returns units of a fixed field up to first zero unit.
func readFixedUnits(field []uint16) Units {
	n := 0
	for n < len(field) && field[n] != 0 {
		n++
	}

	return append(Units(nil), field[:n]...)
}

// writeFixedUnits zero-fills field and copies at most len(field)-1 units of u.
func writeFixedUnits(field []uint16, u Units) {
	clear(field)
	copy(field[:len(field)-1], u)
}
