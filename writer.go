// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

import (
	_ "crypto/sha256" // registers digest.Canonical
	"fmt"
	"io"
	"os"
	"time"

	"github.com/opencontainers/go-digest"
)

// MarshalBinary serializes directory in its layout.
// Loose layout never fails on data shape; fixed layout fails when entries overflow its table.
func (d *Directory) MarshalBinary() ([]byte, error) {
	if d == nil {
		return nil, ErrNilDirectory
	}

	switch d.format {
	case FormatLoose:
		return serializeLoose(d), nil
	case FormatFixed:
		return encodeFixed(d)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, d.format)
	}
}

// WriteTo writes serialized directory to w.
func (d *Directory) WriteTo(w io.Writer) (int64, error) {
	if w == nil {
		return 0, fmt.Errorf("write CFG: writer is nil")
	}

	data, err := d.MarshalBinary()
	if err != nil {
		return 0, err
	}

	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("write CFG: %w", err)
	}

	return int64(n), nil
}

// WriteFile serializes directory to path, replacing existing content without backup.
func (d *Directory) WriteFile(path string) (*CommitResult, error) {
	start := time.Now()

	data, err := d.MarshalBinary()
	if err != nil {
		return nil, err
	}

	if err := writeFileSynced(path, data); err != nil {
		return nil, err
	}

	return d.commitResult(path, data, start), nil
}

// commitResult builds write statistics for data written to path.
func (d *Directory) commitResult(path string, data []byte, start time.Time) *CommitResult {
	return &CommitResult{
		Path:     path,
		Format:   d.format,
		Digest:   digest.FromBytes(data),
		Size:     int64(len(data)),
		Entries:  len(d.entries),
		Duration: time.Since(start),
	}
}

// writeFileSynced creates or truncates path, writes data and syncs it to disk.
func writeFileSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}
