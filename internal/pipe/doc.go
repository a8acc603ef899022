// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package pipe copies output streams of a child process to the host side.
//
// A [Pipe] copies a single stream with a [CopyFunc]. [Pipes] runs any number
// of them concurrently and waits for their termination with a deadline, so a
// child that keeps its terminal open cannot block the caller forever.
package pipe
