// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Command sign-package signs the GTerm macOS bundle with the Tauri signing
// tool. See "sign-package -help" for usage.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gterm/sign-package/internal/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
		syscall.SIGQUIT,
	)

	exitCode := cmd.Run(ctx, os.Args, cmd.IO{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})

	cancel()
	os.Exit(exitCode)
}
