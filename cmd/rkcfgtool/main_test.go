package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/rkcfg"
)

// writeTestCFG creates loose CFG file with name/path pairs and returns its path.
func writeTestCFG(t *testing.T, format rkcfg.Format, pairs ...[2]string) string {
	t.Helper()

	d, err := rkcfg.New(rkcfg.CreateOptions{
		Format: format,
		Time:   time.Date(2024, time.March, 5, 10, 20, 30, 0, time.Local),
	})
	require.NoError(t, err)

	for _, pair := range pairs {
		_, err := d.Add(pair[0], pair[1])
		require.NoError(t, err)
	}

	path := filepath.Join(t.TempDir(), "config.cfg")
	_, err = d.WriteFile(path)
	require.NoError(t, err)

	return path
}

// emptyConfig returns path of an empty YAML config so tests ignore per-user config.
func emptyConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	return path
}

// execute runs rkcfgtool with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRun_DefaultTableListing(t *testing.T) {
	t.Parallel()

	path := writeTestCFG(t, rkcfg.FormatLoose,
		[2]string{"boot", `Image\boot.img`},
		[2]string{"misc", `Image\misc.img`},
	)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	stdout, _, err := execute(t, path, "--config", emptyConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "=== Entry list (2) ===\n 0 1 boot Image\\boot.img\n 1 1 misc Image\\misc.img\n", stdout)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "listing must not rewrite file")
}

func TestRun_ActionsApplyInOrder(t *testing.T) {
	t.Parallel()

	path := writeTestCFG(t, rkcfg.FormatLoose,
		[2]string{"boot", `Image\boot.img`},
		[2]string{"misc", `Image\misc.img`},
	)

	stdout, _, err := execute(t, path, "--config", emptyConfig(t),
		"--add", `recovery=Image\recovery.img`,
		"--list",
		"--del", "0",
		"--set-name", "-1=rescue",
		"--script",
	)
	require.NoError(t, err)

	// Explicit --list prints state at that point, final state follows.
	assert.Equal(t, 2, strings.Count(stdout, "index,enabled,name,path"))
	assert.Contains(t, stdout, "1,1,misc,Image\\misc.img\n2,1,recovery,Image\\recovery.img\n")
	assert.True(t, strings.HasSuffix(stdout, "index,enabled,name,path\n0,1,misc,Image\\misc.img\n1,1,rescue,Image\\recovery.img\n"), stdout)

	entries, err := rkcfg.ListEntries(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "misc", entries[0].Name)
	assert.Equal(t, "rescue", entries[1].Name)
	assert.Equal(t, `Image\recovery.img`, entries[1].Path)
}

func TestRun_FinalStateListedOnce(t *testing.T) {
	t.Parallel()

	path := writeTestCFG(t, rkcfg.FormatLoose, [2]string{"boot", `Image\boot.img`})
	cfg := emptyConfig(t)

	stdout, _, err := execute(t, path, "--config", cfg, "--list", "--add", `misc=Image\misc.img`)
	require.NoError(t, err)
	assert.Equal(t, "=== Entry list (1) ===\n 0 1 boot Image\\boot.img\n"+
		"=== Entry list (2) ===\n 0 1 boot Image\\boot.img\n 1 1 misc Image\\misc.img\n", stdout)

	stdout, _, err = execute(t, path, "--config", cfg, "--del", "-1", "--list")
	require.NoError(t, err)
	assert.Equal(t, "=== Entry list (1) ===\n 0 1 boot Image\\boot.img\n", stdout)
}

func TestRun_OutputFileKeepsInput(t *testing.T) {
	t.Parallel()

	path := writeTestCFG(t, rkcfg.FormatLoose, [2]string{"boot", `Image\boot.img`})
	out := filepath.Join(t.TempDir(), "out.cfg")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, _, err = execute(t, path, "--config", emptyConfig(t), "--set-path", `0=Image\boot2.img`, "-o", out)
	require.NoError(t, err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	entries, err := rkcfg.ListEntries(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, `Image\boot2.img`, entries[0].Path)
}

func TestRun_FailedActionDoesNotWrite(t *testing.T) {
	t.Parallel()

	path := writeTestCFG(t, rkcfg.FormatLoose, [2]string{"boot", `Image\boot.img`})
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, _, err = execute(t, path, "--config", emptyConfig(t), "--set-name", "0=kernel", "--del", "5")
	require.ErrorIs(t, err, rkcfg.ErrIndexOutOfRange)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRun_BadArguments(t *testing.T) {
	t.Parallel()

	path := writeTestCFG(t, rkcfg.FormatLoose, [2]string{"boot", `Image\boot.img`})
	cfg := emptyConfig(t)

	testCases := []struct {
		name string
		args []string
	}{
		{name: "set-path without index", args: []string{"--set-path", "boot.img"}},
		{name: "add without path", args: []string{"--add", "boot"}},
		{name: "bad index", args: []string{"--del", "first"}},
		{name: "bad enable flag", args: []string{"--enable", "0=maybe"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{path, "--config", cfg}, tc.args...)
			_, _, err := execute(t, args...)
			require.ErrorIs(t, err, errBadArgument)
		})
	}
}

func TestRun_JSONAndSelect(t *testing.T) {
	t.Parallel()

	path := writeTestCFG(t, rkcfg.FormatFixed,
		[2]string{"loader", `Image\MiniLoaderAll.bin`},
		[2]string{"boot", `Image\boot.img`},
		[2]string{"misc", `Image\misc.img`},
	)

	stdout, _, err := execute(t, path, "--config", emptyConfig(t),
		"--enable", "1=1",
		"--select", "*.img",
		"--select", "!misc.img",
		"--json",
		"-o", filepath.Join(t.TempDir(), "out.cfg"),
	)
	require.NoError(t, err)

	var got []jsonEntry
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, jsonEntry{Index: 1, Name: "boot", Path: `Image\boot.img`, Enabled: 1}, got[0])
	assert.Contains(t, stdout, `"enabled": 1`)
}

func TestRun_EnableTakesInteger(t *testing.T) {
	t.Parallel()

	path := writeTestCFG(t, rkcfg.FormatFixed, [2]string{"boot", `Image\boot.img`})
	cfg := emptyConfig(t)

	testCases := []struct {
		flag string
		want bool
	}{
		{flag: "0", want: false},
		{flag: "2", want: true},
		{flag: "false", want: false},
		{flag: "-1", want: true},
	}

	for _, tc := range testCases {
		_, _, err := execute(t, path, "--config", cfg, "--enable", "0="+tc.flag)
		require.NoError(t, err, tc.flag)

		entries, err := rkcfg.ListEntries(path)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, tc.want, entries[0].Enabled, tc.flag)
	}
}

func TestRun_FailureReachesLogFile(t *testing.T) {
	t.Parallel()

	path := writeTestCFG(t, rkcfg.FormatLoose, [2]string{"boot", `Image\boot.img`})
	logPath := filepath.Join(t.TempDir(), "rkcfgtool.log")

	_, stderr, err := execute(t, path, "--config", emptyConfig(t), "--log-file", logPath, "--del", "7")
	require.ErrorIs(t, err, rkcfg.ErrIndexOutOfRange)

	var logged *loggedError
	require.ErrorAs(t, err, &logged)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rkcfgtool failed")
	assert.Contains(t, string(data), "--del 7")
	assert.Equal(t, 1, strings.Count(stderr, "rkcfgtool failed"))

	_, _, err = execute(t, path, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.False(t, errors.As(err, &logged), "config failure happens before logger setup")
}

func TestRun_DelMatch(t *testing.T) {
	t.Parallel()

	path := writeTestCFG(t, rkcfg.FormatLoose,
		[2]string{"loader", `Image\MiniLoaderAll.bin`},
		[2]string{"boot", `Image\boot.img`},
		[2]string{"misc", `Image\misc.img`},
	)

	_, _, err := execute(t, path, "--config", emptyConfig(t), "--del-match", "Image/*.img")
	require.NoError(t, err)

	entries, err := rkcfg.ListEntries(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "loader", entries[0].Name)
}

func TestRun_CreateFixedWithBackup(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "new.cfg")

	_, _, err := execute(t, path, "--config", emptyConfig(t),
		"--create", "--format", "fixed",
		"--add", `boot=Image\boot.img`,
		"--enable", "-1=1",
	)
	require.NoError(t, err)

	format, err := rkcfg.ReadFormat(path)
	require.NoError(t, err)
	assert.Equal(t, rkcfg.FormatFixed, format)

	_, _, err = execute(t, path, "--config", emptyConfig(t), "--set-name", "0=kernel", "--backup-keep", "1")
	require.NoError(t, err)

	backup, err := rkcfg.ListEntries(path + ".bak")
	require.NoError(t, err)
	require.Len(t, backup, 1)
	assert.Equal(t, "boot", backup[0].Name)
	assert.True(t, backup[0].Enabled)

	current, err := rkcfg.ListEntries(path)
	require.NoError(t, err)
	assert.Equal(t, "kernel", current[0].Name)
}

func TestRenderScript_QuotesFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := renderScript(&buf, []rkcfg.EntryInfo{{Index: 0, Name: "a,b", Path: "p", Enabled: true}})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"index", "enabled", "name", "path"}, {"0", "1", "a,b", "p"}}, records)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: json\nbackup_keep: 2\nlog:\n  level: debug\n  file: logs/rkcfgtool.log\n"), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 2, cfg.BackupKeep)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join(dir, "logs", "rkcfgtool.log"), cfg.Log.File)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)

	_, err = loadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("unknown_key: 1\n"), 0o600))
	_, err = loadConfig(path)
	require.Error(t, err)
}

func TestNewLogger_WritesFile(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "logs", "rkcfgtool.log")

	log, closeLog, err := newLogger(&stderr, logConfig{Level: "info", File: logPath, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Info("hello")
	closeLog()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, stderr.String(), "hello")

	_, _, err = newLogger(&stderr, logConfig{Level: "loud"})
	require.Error(t, err)
}
