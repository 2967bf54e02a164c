// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

import (
	"time"

	"github.com/opencontainers/go-digest"
)

// Internal binary layout and format limits.
const (
	magicTag        = "CFG" // leading tag shared by both variants
	magicSize       = 4     // tag plus one NUL slot
	looseHeaderSize = 16    // magic slot + six u16 timestamp fields
	looseTerminator = 16    // zero run closing freshly created loose files
	fixedHeaderSize = 29    // packed RKCfgHeader size
	fixedItemSize   = 610   // packed RKCfgItem size
	fixedNameUnits  = 40    // UTF-16 units in fixed name field
	fixedPathUnits  = 260   // UTF-16 units in fixed image path field
	maxFixedEntries = 255   // fixed header length is one byte
)

// Format identifies a CFG directory layout variant.
type Format string

// Supported CFG layouts.
const (
	// FormatAuto detects the layout from content. Valid only in options.
	FormatAuto Format = "auto"
	// FormatLoose is the heuristic layout: UTF-16 strings separated by opaque gaps.
	FormatLoose Format = "loose"
	// FormatFixed is the structured layout: counted table of fixed-width records.
	FormatFixed Format = "fixed"
)

// Entry is one directory record.
type Entry struct {
	// Name is image name as stored in file.
	Name Units
	// Path is image path; empty for name-only entries.
	Path Units
	// Separator keeps opaque bytes found between name and path (loose layout).
	Separator []byte
	// Gap keeps opaque bytes following the entry up to the next one (loose layout).
	Gap []byte
	// Address is target flash address (fixed layout).
	Address uint32
	// Enabled is the flash selection flag (fixed layout).
	Enabled bool

	// pathless marks reconstructed entries that had no path string in source.
	pathless bool
	// record keeps the source fixed record so unknown fields survive rewrite.
	record *fixedItem
}

// clone returns a deep copy of entry.
func (e *Entry) clone() Entry {
	out := *e
	out.Name = append(Units(nil), e.Name...)
	out.Path = append(Units(nil), e.Path...)
	out.Separator = append([]byte(nil), e.Separator...)
	out.Gap = append([]byte(nil), e.Gap...)
	if e.record != nil {
		rec := *e.record
		out.record = &rec
	}

	return out
}

// EntryInfo is a display view of one directory entry.
type EntryInfo struct {
	// Name is image name.
	Name string `json:"name" yaml:"name"`
	// Path is image path.
	Path string `json:"path" yaml:"path"`
	// Index is entry position in directory.
	Index int `json:"index" yaml:"index"`
	// GapSize is number of opaque bytes owned by entry.
	GapSize int `json:"gap_size,omitempty" yaml:"gap_size,omitempty"`
	// Address is target flash address (fixed layout only).
	Address uint32 `json:"address,omitempty" yaml:"address,omitempty"`
	// Enabled is flash selection flag.
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// ReaderOptions configures parse behavior.
type ReaderOptions struct {
	// Format forces layout; empty or FormatAuto detects it.
	Format Format `json:"format,omitempty" yaml:"format,omitempty"`
}

// CreateOptions configures fresh directory construction.
type CreateOptions struct {
	// Time is stamped into loose header; zero means current local time.
	Time time.Time `json:"time,omitzero" yaml:"time,omitempty"`
	// Format selects layout of new file. Default is FormatLoose.
	Format Format `json:"format,omitempty" yaml:"format,omitempty"`
}

// EditOptions configures file-based edit flow.
type EditOptions struct {
	// Output is destination path; empty means rewrite source in place.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
	// Reader options are used when loading existing source.
	Reader ReaderOptions `json:"reader,omitzero" yaml:"reader,omitempty"`
	// Create options are used when Create is set.
	CreateOptions CreateOptions `json:"create_options,omitzero" yaml:"create_options,omitempty"`
	// BackupKeep controls how many backup generations of destination are kept after commit.
	// 0 means remove backup, 1 keeps only `<file>.bak`, N keeps `.bak` + `.bak.1..N-1`.
	BackupKeep int `json:"backup_keep,omitempty" yaml:"backup_keep,omitempty"`
	// Create starts a fresh directory instead of reading source.
	Create bool `json:"create,omitempty" yaml:"create,omitempty"`
}

// CommitResult contains editor commit output statistics.
type CommitResult struct {
	// Path is written destination.
	Path string `json:"path" yaml:"path"`
	// Format is layout of written file.
	Format Format `json:"format" yaml:"format"`
	// Digest is sha256 digest of written bytes.
	Digest digest.Digest `json:"digest" yaml:"digest"`
	// Size is number of bytes written.
	Size int64 `json:"size" yaml:"size"`
	// Entries is number of entries written.
	Entries int `json:"entries" yaml:"entries"`
	// Duration is end-to-end commit duration.
	Duration time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// applyDefaults fills zero-valued reader options with defaults.
func (opts *ReaderOptions) applyDefaults() {
	if opts.Format == "" {
		opts.Format = FormatAuto
	}
}

// applyDefaults fills zero-valued create options with defaults.
func (opts *CreateOptions) applyDefaults() {
	if opts.Format == "" || opts.Format == FormatAuto {
		opts.Format = FormatLoose
	}

	if opts.Time.IsZero() {
		opts.Time = time.Now()
	}
}

// applyDefaults fills zero-valued edit options with defaults.
func (opts *EditOptions) applyDefaults() {
	opts.Reader.applyDefaults()
	opts.CreateOptions.applyDefaults()

	if opts.BackupKeep < 0 {
		opts.BackupKeep = 0
	}
}
