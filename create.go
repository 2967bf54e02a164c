// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-restruct/restruct"
)

// New creates an empty directory with a fresh header.
// Loose layout gets a header stamped with opts.Time and a zero terminator suffix;
// fixed layout gets an empty record table.
func New(opts CreateOptions) (*Directory, error) {
	opts.applyDefaults()

	switch opts.Format {
	case FormatLoose:
		return &Directory{
			format: FormatLoose,
			prefix: newLooseHeader(opts.Time),
			suffix: make([]byte, looseTerminator),
		}, nil
	case FormatFixed:
		hdr := newFixedHeader()
		raw, err := restruct.Pack(fixedByteOrder, &hdr)
		if err != nil {
			return nil, fmt.Errorf("encode fixed header: %w", err)
		}

		return &Directory{
			format: FormatFixed,
			header: &hdr,
			prefix: raw,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

// newLooseHeader returns magic slot followed by day, year, month, hour, minute, second.
func newLooseHeader(t time.Time) []byte {
	hdr := make([]byte, magicSize, looseHeaderSize)
	copy(hdr, magicTag)

	for _, field := range []int{t.Day(), t.Year(), int(t.Month()), t.Hour(), t.Minute(), t.Second()} {
		hdr = binary.LittleEndian.AppendUint16(hdr, uint16(field)) //nolint:gosec // calendar fields fit u16
	}

	return hdr
}

// HeaderTime decodes timestamp stamped in loose header. It reports false for fixed layout
// or when fields do not form a valid date.
func (d *Directory) HeaderTime() (time.Time, bool) {
	if d == nil || d.format != FormatLoose || len(d.prefix) < looseHeaderSize {
		return time.Time{}, false
	}

	var f [6]int
	for i := range f {
		f[i] = int(binary.LittleEndian.Uint16(d.prefix[magicSize+i*2:]))
	}

	day, year, month, hour, minute, second := f[0], f[1], f[2], f[3], f[4], f[5]
	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local), true
}
