// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package signer runs the external signing tool for a bundle artifact.
//
// The tool is started on a pseudo terminal, since it reads the private key
// password from its controlling terminal. If the tool prints the configured
// prompt within the prompt window, the configured response (an empty line by
// default) is written once. The tool must then terminate within the
// completion window, otherwise its whole process group is killed.
//
// The outcome is reported as a [CommandError]. If [CommandError.Tool] is set,
// the tool ran and reported [CommandError.ExitCode]. Otherwise the tool could
// not be run to completion and no exit code of its own is available.
package signer
