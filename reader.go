// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// fixedItemSizeOffset is offset of itemSize field in fixed header.
const fixedItemSizeOffset = fixedHeaderSize - 2

// ReadFile reads CFG file by path and parses its directory.
func ReadFile(path string) (*Directory, error) {
	return ReadFileWithOptions(path, ReaderOptions{})
}

// ReadFileWithOptions reads CFG file by path and parses its directory using explicit reader options.
// The file handle is held only while reading.
func ReadFileWithOptions(path string, opts ReaderOptions) (*Directory, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read CFG %s: %w", path, err)
	}

	d, err := ParseWithOptions(buf, opts)
	if err != nil {
		return nil, fmt.Errorf("parse CFG %s: %w", path, err)
	}

	return d, nil
}

// ParseReaderAt reads size bytes from random-access source and parses its directory.
func ParseReaderAt(ra io.ReaderAt, size int64, opts ReaderOptions) (*Directory, error) {
	if ra == nil {
		return nil, errors.New("reader is nil")
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrTruncated, size)
	}

	buf := make([]byte, size)
	if _, err := ra.ReadAt(buf, 0); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read CFG: %w", err)
	}

	return ParseWithOptions(buf, opts)
}

// Parse parses a CFG directory from memory, detecting layout.
func Parse(buf []byte) (*Directory, error) {
	return ParseWithOptions(buf, ReaderOptions{})
}

// ParseWithOptions parses a CFG directory from memory using explicit reader options.
// Returned directory does not reference buf.
func ParseWithOptions(buf []byte, opts ReaderOptions) (*Directory, error) {
	opts.applyDefaults()

	switch opts.Format {
	case FormatAuto:
		return parseAuto(buf)
	case FormatFixed:
		return decodeFixed(buf)
	case FormatLoose:
		return parseLoose(buf)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

// DetectFormat reports layout Parse would select for buf.
// A header claiming the fixed record size selects the fixed layout only when
// its record table validates; otherwise the loose layout is reported.
// Loose entries are not extracted, so a loose result does not guarantee Parse succeeds.
func DetectFormat(buf []byte) (Format, error) {
	if err := checkMagic(buf); err != nil {
		return "", err
	}

	if claimsFixedLayout(buf) {
		if _, err := decodeFixed(buf); err == nil {
			return FormatFixed, nil
		}
	}

	return FormatLoose, nil
}

// parseAuto tries fixed layout when header claims it and falls back to loose
// extraction when the record table does not validate.
func parseAuto(buf []byte) (*Directory, error) {
	if !claimsFixedLayout(buf) {
		return parseLoose(buf)
	}

	d, fixedErr := decodeFixed(buf)
	if fixedErr == nil {
		return d, nil
	}
	if !fixedFallbackAllowed(fixedErr) {
		return nil, fixedErr
	}

	d, looseErr := parseLoose(buf)
	if looseErr != nil {
		return nil, errors.Join(fixedErr, looseErr)
	}

	return d, nil
}

// fixedFallbackAllowed reports whether fixed decode error comes from record
// table validation, where loose gap bytes may mimic the fixed header.
func fixedFallbackAllowed(err error) bool {
	return errors.Is(err, ErrUnsupportedItemSize) ||
		errors.Is(err, ErrTruncated) ||
		errors.Is(err, ErrItemSizeMismatch)
}

// claimsFixedLayout reports whether header declares the fixed record size.
// Loose headers usually carry zero padding at this offset, but opaque gap bytes may land here.
func claimsFixedLayout(buf []byte) bool {
	if len(buf) < fixedHeaderSize {
		return false
	}

	return binary.LittleEndian.Uint16(buf[fixedItemSizeOffset:]) == fixedItemSize
}

// parseLoose extracts and classifies loose layout.
func parseLoose(buf []byte) (*Directory, error) {
	layout, err := extractLoose(buf)
	if err != nil {
		return nil, err
	}

	entries := classifyLayout(layout)
	for i := range entries {
		entries[i].Enabled = true
	}

	return &Directory{
		format:  FormatLoose,
		prefix:  layout.prefix,
		entries: entries,
		suffix:  layout.suffix,
	}, nil
}
