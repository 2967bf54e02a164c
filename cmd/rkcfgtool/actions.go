// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/woozymasta/pathrules"

	"github.com/woozymasta/rkcfg"
)

// actionKind names an edit action; it equals the flag name.
type actionKind string

// Actions applied in command line order.
const (
	actionList     actionKind = "list"
	actionSetPath  actionKind = "set-path"
	actionSetName  actionKind = "set-name"
	actionAdd      actionKind = "add"
	actionDelete   actionKind = "del"
	actionEnable   actionKind = "enable"
	actionDelMatch actionKind = "del-match"
	actionSelect   actionKind = "select"
)

// errBadArgument means an action value does not have the expected form.
var errBadArgument = errors.New("invalid action argument")

// action is one recorded action flag occurrence.
type action struct {
	kind  actionKind
	value string
}

// actionValue is a pflag.Value recording every occurrence into a shared ordered list.
type actionValue struct {
	actions *[]action
	kind    actionKind
	typ     string
}

// String implements pflag.Value.
func (v *actionValue) String() string { return "" }

// Type implements pflag.Value.
func (v *actionValue) Type() string { return v.typ }

// Set implements pflag.Value.
func (v *actionValue) Set(value string) error {
	if v.kind == actionList {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		if !enabled {
			return nil
		}
	}

	*v.actions = append(*v.actions, action{kind: v.kind, value: value})
	return nil
}

// registerActionFlags defines ordered action flags writing into actions.
func registerActionFlags(flags *pflag.FlagSet, actions *[]action) {
	define := func(kind actionKind, typ string, usage string) *pflag.Flag {
		return flags.VarPF(&actionValue{actions: actions, kind: kind, typ: typ}, string(kind), "", usage)
	}

	list := define(actionList, "bool", "print entry list at this point")
	list.NoOptDefVal = "true"

	define(actionSetPath, "IDX=PATH", "set image path of entry IDX (-1 is last)")
	define(actionSetName, "IDX=NAME", "set name of entry IDX (-1 is last)")
	define(actionAdd, "NAME=PATH", "append entry; split at first '=', so NAME cannot contain '='")
	define(actionDelete, "IDX", "delete entry IDX (-1 is last)")
	define(actionEnable, "IDX=N", "set flash selection flag of entry IDX, non-zero N enables (fixed layout)")
	define(actionDelMatch, "PATTERN", "delete entries whose path matches gitignore-like PATTERN")
	define(actionSelect, "PATTERN", "limit listings to entries matching PATTERN (! prefix excludes)")
}

// runner applies actions to one editor.
type runner struct {
	editor      *rkcfg.Editor
	log         *logrus.Logger
	out         io.Writer
	selectRules []pathrules.Rule
	matcherOpts pathrules.MatcherOptions
	format      listFormat
	// listedLast is set when the last applied action printed the list.
	listedLast bool
}

// apply runs one action.
func (r *runner) apply(a action) error {
	r.listedLast = a.kind == actionList

	switch a.kind {
	case actionList:
		return r.render()

	case actionSetPath:
		idx, text, err := parseIndexed(a.value)
		if err != nil {
			return err
		}

		return r.editor.SetPath(idx, text)

	case actionSetName:
		idx, text, err := parseIndexed(a.value)
		if err != nil {
			return err
		}

		return r.editor.SetName(idx, text)

	case actionAdd:
		name, path, ok := strings.Cut(a.value, "=")
		if !ok {
			return fmt.Errorf("%w: want NAME=PATH", errBadArgument)
		}

		idx, err := r.editor.Add(name, path)
		if err != nil {
			return err
		}

		r.log.WithFields(logrus.Fields{"index": idx, "name": name, "path": path}).Debug("entry added")
		return nil

	case actionDelete:
		idx, err := parseIndex(a.value)
		if err != nil {
			return err
		}

		return r.editor.Delete(idx)

	case actionEnable:
		idx, flag, err := parseIndexed(a.value)
		if err != nil {
			return err
		}

		enabled, err := parseEnableFlag(flag)
		if err != nil {
			return err
		}

		if r.editor.Directory().Format() != rkcfg.FormatFixed {
			r.log.WithField("index", idx).Warn("loose layout has no selection flag, --enable ignored")
		}

		return r.editor.SetEnabled(idx, enabled)

	case actionDelMatch:
		n, err := r.editor.DeleteMatching(rkcfg.ParseRules(a.value), r.matcherOpts)
		if err != nil {
			return err
		}

		r.log.WithFields(logrus.Fields{"pattern": a.value, "removed": n}).Info("entries deleted")
		return nil

	case actionSelect:
		rules := rkcfg.ParseRules(a.value)
		if len(rules) == 0 {
			return fmt.Errorf("%w: empty pattern", errBadArgument)
		}

		r.selectRules = append(r.selectRules, rules...)
		return nil

	default:
		return fmt.Errorf("%w: unknown action %q", errBadArgument, a.kind)
	}
}

// render prints current entries, limited by --select rules when present.
func (r *runner) render() error {
	entries := r.editor.Entries()
	if len(r.selectRules) != 0 {
		selected, err := r.editor.Directory().Select(r.selectRules, r.matcherOpts)
		if err != nil {
			return err
		}

		filtered := make([]rkcfg.EntryInfo, 0, len(selected))
		for _, idx := range selected {
			filtered = append(filtered, entries[idx])
		}
		entries = filtered
	}

	return renderEntries(r.out, r.format, entries)
}

// parseIndexed splits IDX=VALUE.
func parseIndexed(value string) (int, string, error) {
	rawIndex, text, ok := strings.Cut(value, "=")
	if !ok {
		return 0, "", fmt.Errorf("%w: want IDX=VALUE", errBadArgument)
	}

	idx, err := parseIndex(rawIndex)
	if err != nil {
		return 0, "", err
	}

	return idx, text, nil
}

// parseEnableFlag parses selection flag: any integer, non-zero enables.
// Boolean words are accepted too.
func parseEnableFlag(raw string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n != 0, nil
	}

	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: flag %q", errBadArgument, raw)
	}

	return enabled, nil
}

// parseIndex parses entry index; -1 addresses the last entry.
func parseIndex(raw string) (int, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", errBadArgument, raw)
	}

	return idx, nil
}
