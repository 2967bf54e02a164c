// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// config is rkcfgtool YAML configuration. Flags override file values.
type config struct {
	// Output is default list format: table, json or script.
	Output string `yaml:"output"`
	// CreateFormat is layout of files made with --create: loose or fixed.
	CreateFormat string `yaml:"create_format"`
	// Log configures logging.
	Log logConfig `yaml:"log"`
	// BackupKeep is number of backup generations kept on commit.
	BackupKeep int `yaml:"backup_keep"`
	// CaseSensitive switches pattern matching to case-sensitive mode.
	CaseSensitive bool `yaml:"case_sensitive"`
}

// logConfig configures logrus level and optional rotated log file.
type logConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxAgeDays int    `yaml:"max_age_days"`
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress"`
}

// defaultConfigPath returns per-user config location.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "rkcfgtool", "config.yaml")
}

// loadConfig reads config from path. With empty path the per-user file is used when present.
func loadConfig(path string) (config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = defaultConfigPath()
	}

	var cfg config
	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer func() { _ = f.Close() }()

			dec := yaml.NewDecoder(f)
			dec.KnownFields(true)
			if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
				return cfg, fmt.Errorf("decode config %s: %w", path, err)
			}

			cfg.Log.File = resolveConfigPath(filepath.Dir(path), cfg.Log.File)
		case explicit || !errors.Is(err, os.ErrNotExist):
			return cfg, fmt.Errorf("open config: %w", err)
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

// resolveConfigPath makes relative path from config file absolute to config directory.
func resolveConfigPath(baseDir string, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Clean(filepath.Join(baseDir, p))
}

// applyDefaults fills zero-valued config fields.
func (cfg *config) applyDefaults() {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.MaxSizeMB <= 0 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Log.MaxAgeDays <= 0 {
		cfg.Log.MaxAgeDays = 30
	}
	if cfg.Log.MaxBackups <= 0 {
		cfg.Log.MaxBackups = 3
	}
	if cfg.BackupKeep < 0 {
		cfg.BackupKeep = 0
	}
}

// applyFlags overrides config values with explicitly set flags.
func (cfg *config) applyFlags(flags *pflag.FlagSet, opts *rootOptions) {
	switch {
	case opts.jsonOut:
		cfg.Output = string(listJSON)
	case opts.scriptOut:
		cfg.Output = string(listScript)
	}

	if flags.Changed("format") {
		cfg.CreateFormat = opts.format
	}
	if flags.Changed("backup-keep") {
		cfg.BackupKeep = max(opts.backupKeep, 0)
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}
}
