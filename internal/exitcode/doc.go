// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package exitcode maps run results to process exit codes.
package exitcode
