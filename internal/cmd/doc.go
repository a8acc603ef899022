// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI command entry point for sign-package. It
// handles flag parsing, the config file, logging setup and the translation of
// signing results into output and exit codes.
package cmd
