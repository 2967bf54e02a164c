// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

// Command rkcfgtool lists and edits CFG image directory files.
package main

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		var logged *loggedError
		if !errors.As(err, &logged) {
			logrus.New().WithError(err).Error("rkcfgtool failed")
		}

		os.Exit(1)
	}
}
