// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

import "errors"

// Sentinel errors for CFG operations. Use errors.Is in callers.
var (
	// ErrBadMagic means the file does not start with the "CFG" tag.
	ErrBadMagic = errors.New("invalid CFG file: bad magic")
	// ErrTruncated means the buffer is shorter than the format header or record table.
	ErrTruncated = errors.New("invalid CFG file: truncated")
	// ErrNoEntries means no directory strings were found after the header.
	ErrNoEntries = errors.New("no directory entries found")
	// ErrIndexOutOfRange means an edit referenced an entry index outside the directory.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrUnsupportedItemSize means the fixed header declares an unknown record size.
	ErrUnsupportedItemSize = errors.New("unsupported item size")
	// ErrItemSizeMismatch means a fixed record size differs from the header item size.
	ErrItemSizeMismatch = errors.New("item size mismatch")
	// ErrTooManyEntries means the fixed variant cannot count the entries in its one-byte length field.
	ErrTooManyEntries = errors.New("too many entries for fixed CFG table")
	// ErrUnknownFormat means the requested format is not supported.
	ErrUnknownFormat = errors.New("unknown CFG format")
	// ErrInvalidRule means one or more selection rules are invalid.
	ErrInvalidRule = errors.New("invalid selection rules")
	// ErrNilDirectory means the directory is nil.
	ErrNilDirectory = errors.New("directory is nil")
	// ErrInvalidText means entry text cannot be stored as a zero-terminated UTF-16 string.
	ErrInvalidText = errors.New("invalid entry text")
	// ErrInvalidPath means a file path argument is empty.
	ErrInvalidPath = errors.New("invalid file path")
)
