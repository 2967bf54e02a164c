// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/woozymasta/pathrules"

	"github.com/woozymasta/rkcfg"
)

// rootOptions holds parsed command line state.
type rootOptions struct {
	actions    []action
	configPath string
	output     string
	format     string
	logLevel   string
	logFile    string
	backupKeep int
	create     bool
	jsonOut    bool
	scriptOut  bool
}

// newRootCmd builds rkcfgtool command.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "rkcfgtool <cfg>",
		Short: "List and edit CFG image directory files",
		Long: "Read a CFG directory, apply edit actions in command line order, print the entry list,\n" +
			"and write the result back to the input file or to --output.",
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args[0])
		},
	}
	cmd.SetVersionTemplate("rkcfgtool {{.Version}}\n")

	flags := cmd.Flags()
	flags.SortFlags = false
	registerActionFlags(flags, &opts.actions)

	flags.BoolVar(&opts.create, "create", false, "start a new CFG file instead of reading <cfg>")
	flags.StringVar(&opts.format, "format", "", "layout of created file: loose or fixed")
	flags.StringVarP(&opts.output, "output", "o", "", "write result to this file instead of <cfg>")
	flags.BoolVar(&opts.jsonOut, "json", false, "print entries as JSON")
	flags.BoolVar(&opts.scriptOut, "script", false, "print entries as CSV: index,enabled,name,path")
	flags.StringVar(&opts.configPath, "config", "", "path to YAML config (default $XDG_CONFIG_HOME/rkcfgtool/config.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFile, "log-file", "", "also write logs to this rotated file")
	flags.IntVar(&opts.backupKeep, "backup-keep", 0, "backup generations of destination to keep")
	cmd.MarkFlagsMutuallyExclusive("json", "script")

	return cmd
}

// loggedError marks a failure already reported through the configured logger.
type loggedError struct {
	err error
}

func (e *loggedError) Error() string { return e.err.Error() }

func (e *loggedError) Unwrap() error { return e.err }

// runRoot applies actions to one CFG file and commits when anything changed.
// Failures after logger setup are logged through it and returned as *loggedError.
func runRoot(cmd *cobra.Command, opts *rootOptions, path string) (err error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	cfg.applyFlags(cmd.Flags(), opts)

	log, closeLog, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()
	defer func() {
		if err != nil {
			log.WithError(err).WithField("path", path).Error("rkcfgtool failed")
			err = &loggedError{err: err}
		}
	}()

	listFormat, err := parseListFormat(cfg.Output)
	if err != nil {
		return err
	}

	editor, err := rkcfg.OpenEditor(path, rkcfg.EditOptions{
		Output:        opts.output,
		BackupKeep:    cfg.BackupKeep,
		Create:        opts.create,
		CreateOptions: rkcfg.CreateOptions{Format: rkcfg.Format(cfg.CreateFormat)},
	})
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"path":    path,
		"format":  editor.Directory().Format(),
		"entries": editor.Directory().Len(),
		"create":  opts.create,
	}).Debug("directory loaded")

	r := &runner{
		editor: editor,
		log:    log,
		out:    cmd.OutOrStdout(),
		format: listFormat,
		matcherOpts: pathrules.MatcherOptions{
			CaseInsensitive: !cfg.CaseSensitive,
			DefaultAction:   pathrules.ActionExclude,
		},
	}

	for _, a := range opts.actions {
		if err := r.apply(a); err != nil {
			return fmt.Errorf("--%s %s: %w", a.kind, a.value, err)
		}
	}

	if !r.listedLast {
		if err := r.render(); err != nil {
			return err
		}
	}

	if !editor.Modified() && opts.output == "" {
		return nil
	}

	res, err := editor.Commit(context.Background())
	if err != nil {
		return fmt.Errorf("commit %s: %w", editor.Destination(), err)
	}

	log.WithFields(logrus.Fields{
		"path":     res.Path,
		"format":   res.Format,
		"size":     res.Size,
		"entries":  res.Entries,
		"digest":   res.Digest.String(),
		"duration": res.Duration,
	}).Info("written")

	return nil
}
