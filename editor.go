// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/woozymasta/pathrules"
)

// Editor applies directory edits in memory and writes them on Commit.
// Source file is read once on open and is not touched until Commit.
type Editor struct {
	dir      *Directory
	path     string
	opts     EditOptions
	modified bool
}

// OpenEditor creates editor for file-based directory rewrite workflow.
// With opts.Create a fresh directory is started instead of reading path.
func OpenEditor(path string, opts EditOptions) (*Editor, error) {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return nil, ErrInvalidPath
	}

	opts.applyDefaults()
	opts.Output = strings.TrimSpace(opts.Output)

	var (
		dir *Directory
		err error
	)
	if opts.Create {
		dir, err = New(opts.CreateOptions)
	} else {
		dir, err = ReadFileWithOptions(trimmedPath, opts.Reader)
	}
	if err != nil {
		return nil, err
	}

	return &Editor{
		dir:      dir,
		path:     trimmedPath,
		opts:     opts,
		modified: opts.Create,
	}, nil
}

// Directory returns edited directory. Changes made through it are not tracked by Modified.
func (e *Editor) Directory() *Directory {
	if e == nil {
		return nil
	}

	return e.dir
}

// Modified reports whether any edit was applied since open or last commit.
func (e *Editor) Modified() bool {
	return e != nil && e.modified
}

// Destination returns path Commit writes to.
func (e *Editor) Destination() string {
	if e == nil {
		return ""
	}

	if e.opts.Output != "" {
		return e.opts.Output
	}

	return e.path
}

// Entries returns current entry view.
func (e *Editor) Entries() []EntryInfo {
	if e == nil {
		return nil
	}

	return e.dir.Entries()
}

// SetName replaces name of entry at index.
func (e *Editor) SetName(index int, name string) error {
	return e.apply(func(d *Directory) error { return d.SetName(index, name) })
}

// SetPath replaces image path of entry at index.
func (e *Editor) SetPath(index int, path string) error {
	return e.apply(func(d *Directory) error { return d.SetPath(index, path) })
}

// Add appends a new entry and returns its index.
func (e *Editor) Add(name string, path string) (int, error) {
	var idx int
	err := e.apply(func(d *Directory) error {
		var err error
		idx, err = d.Add(name, path)
		return err
	})

	return idx, err
}

// Delete removes entry at index.
func (e *Editor) Delete(index int) error {
	return e.apply(func(d *Directory) error { return d.Delete(index) })
}

// SetEnabled sets flash selection flag of entry at index.
func (e *Editor) SetEnabled(index int, enabled bool) error {
	return e.apply(func(d *Directory) error { return d.SetEnabled(index, enabled) })
}

// SetAddress sets target flash address of entry at index.
func (e *Editor) SetAddress(index int, address uint32) error {
	return e.apply(func(d *Directory) error { return d.SetAddress(index, address) })
}

// DeleteMatching removes entries included by rules and returns number of removed entries.
func (e *Editor) DeleteMatching(rules []pathrules.Rule, opts pathrules.MatcherOptions) (int, error) {
	var n int
	err := e.apply(func(d *Directory) error {
		var err error
		n, err = d.DeleteMatching(rules, opts)
		return err
	})

	return n, err
}

// SetEnabledMatching sets flash selection flag of entries included by rules.
func (e *Editor) SetEnabledMatching(rules []pathrules.Rule, opts pathrules.MatcherOptions, enabled bool) (int, error) {
	var n int
	err := e.apply(func(d *Directory) error {
		var err error
		n, err = d.SetEnabledMatching(rules, opts, enabled)
		return err
	})

	return n, err
}

// apply runs one edit and marks editor modified on success.
func (e *Editor) apply(edit func(d *Directory) error) error {
	if e == nil || e.dir == nil {
		return ErrNilDirectory
	}

	if err := edit(e.dir); err != nil {
		return err
	}

	e.modified = true
	return nil
}

// Commit serializes directory and replaces destination in one transaction.
// Existing destination is moved to backup first and restored when write fails.
func (e *Editor) Commit(ctx context.Context) (*CommitResult, error) {
	if e == nil || e.dir == nil {
		return nil, ErrNilDirectory
	}

	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	data, err := e.dir.MarshalBinary()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dst := e.Destination()
	backupPath := dst + ".bak"
	hadDestination, err := fileExists(dst)
	if err != nil {
		return nil, err
	}

	if hadDestination {
		if err := rotateBackups(backupPath, e.opts.BackupKeep); err != nil {
			return nil, err
		}

		if err := os.Rename(dst, backupPath); err != nil {
			return nil, fmt.Errorf("move CFG to backup: %w", err)
		}
	}

	if err := writeFileSynced(dst, data); err != nil {
		if !hadDestination {
			_ = os.Remove(dst)
			return nil, err
		}

		rollbackErr := restoreBackup(backupPath, dst)
		if rollbackErr != nil {
			return nil, fmt.Errorf("%w (rollback failed: %w)", err, rollbackErr)
		}

		return nil, err
	}

	if hadDestination && e.opts.BackupKeep == 0 {
		if err := dropFile(backupPath); err != nil {
			return nil, fmt.Errorf("remove backup: %w", err)
		}
	}

	e.modified = false
	return e.dir.commitResult(dst, data, start), nil
}

// fileExists reports whether path names an existing file.
func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	return true, nil
}

// backupGenerations lists backup names from newest to oldest for keep generations.
// The newest is backupPath itself, older ones carry .1, .2 and so on.
func backupGenerations(backupPath string, keep int) []string {
	names := []string{backupPath}
	for i := 1; i < keep; i++ {
		names = append(names, backupPath+"."+strconv.Itoa(i))
	}

	return names
}

// rotateBackups frees the newest backup slot. Older generations move one step
// down and the one falling out of keep is dropped.
func rotateBackups(backupPath string, keep int) error {
	gens := backupGenerations(backupPath, keep)
	if err := dropFile(gens[len(gens)-1]); err != nil {
		return err
	}

	for i := len(gens) - 2; i >= 0; i-- {
		err := os.Rename(gens[i], gens[i+1])
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("shift backup %s: %w", gens[i], err)
		}
	}

	return nil
}

// dropFile removes path; a missing file is not an error.
func dropFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}

	return nil
}

// restoreBackup puts backup back in place of a failed write.
func restoreBackup(backupPath string, dst string) error {
	if err := dropFile(dst); err != nil {
		return err
	}

	if err := os.Rename(backupPath, dst); err != nil {
		return fmt.Errorf("restore backup %s: %w", backupPath, err)
	}

	return nil
}
