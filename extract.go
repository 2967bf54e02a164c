// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

import (
	"bytes"
	"fmt"
)

// rawString is one accepted directory string span [start, end) in source buffer.
type rawString struct {
	// value holds decoded units without terminator.
	value Units
	// start is offset of first unit.
	start int
	// end is offset just past terminator (or buffer end for unterminated tail).
	end int
}

// looseLayout is loose extractor output before entry classification.
type looseLayout struct {
	// prefix holds header, padding and any noise before first accepted string.
	prefix []byte
	// strings are accepted spans in source order.
	strings []rawString
	// gaps[i] holds bytes between strings[i] and the next accepted string.
	// The last gap is always empty: those bytes belong to suffix.
	gaps [][]byte
	// suffix holds bytes after last accepted string.
	suffix []byte
}

// checkMagic validates the "CFG" tag shared by both layouts.
func checkMagic(buf []byte) error {
	if len(buf) < len(magicTag) {
		return fmt.Errorf("%w: %d bytes", ErrTruncated, len(buf))
	}

	if !bytes.Equal(buf[:len(magicTag)], []byte(magicTag)) {
		return fmt.Errorf("%w: % x", ErrBadMagic, buf[:len(magicTag)])
	}

	return nil
}

// extractLoose partitions buf into prefix, accepted strings with gaps, and suffix.
func extractLoose(buf []byte) (*looseLayout, error) {
	if err := checkMagic(buf); err != nil {
		return nil, err
	}

	if len(buf) < looseHeaderSize {
		return nil, fmt.Errorf("%w: short header (%d < %d bytes)", ErrTruncated, len(buf), looseHeaderSize)
	}

	candidate, ok := findNextCandidate(buf, looseDirectoryStart(buf))
	if !ok {
		return nil, ErrNoEntries
	}

	layout := &looseLayout{}
	for ok {
		value, next := readTerminated(buf, candidate)
		if acceptString(value) {
			layout.strings = append(layout.strings, rawString{
				value: value,
				start: candidate,
				end:   next,
			})
		}

		candidate, ok = findNextCandidate(buf, next)
	}

	if len(layout.strings) == 0 {
		return nil, fmt.Errorf("%w: no printable strings after header", ErrNoEntries)
	}

	layout.prefix = bytes.Clone(buf[:layout.strings[0].start])
	layout.gaps = make([][]byte, len(layout.strings))
	for i := range layout.strings {
		gapEnd := len(buf)
		if i+1 < len(layout.strings) {
			gapEnd = layout.strings[i+1].start
		}

		layout.gaps[i] = bytes.Clone(buf[layout.strings[i].end:gapEnd])
	}

	// Tail of file (terminator region) is not owned by the last entry.
	last := len(layout.gaps) - 1
	layout.suffix = layout.gaps[last]
	layout.gaps[last] = nil

	return layout, nil
}

// looseDirectoryStart returns the scan start: past header and zero padding, aligned down to even.
func looseDirectoryStart(buf []byte) int {
	pos := looseHeaderSize
	for pos < len(buf) && buf[pos] == 0 {
		pos++
	}

	return pos &^ 1
}
