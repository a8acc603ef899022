// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package signer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// startTool starts the signing tool in dir in a new session with a pseudo
// terminal as its controlling terminal and stdio. A relative name with a path
// separator is resolved against dir.
//
// The returned file is the controlling side of the terminal. The caller must
// close it. Once the context is done, the tool's process group is killed.
func startTool(
	ctx context.Context,
	dir string,
	name string,
	args []string,
) (*exec.Cmd, *os.File, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Cancel = func() error {
		return killProcessGroup(cmd.Process)
	}

	tty, err := pty.StartWithAttrs(cmd, nil, &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSpawn, err)
	}

	return cmd, tty, nil
}

// killProcessGroup kills the process and everything it started.
//
// The process is the leader of its own session, so its process group ID is
// its PID.
func killProcessGroup(process *os.Process) error {
	if process == nil {
		return nil
	}

	err := unix.Kill(-process.Pid, unix.SIGKILL)
	if err != nil && !errors.Is(err, unix.ESRCH) {
		return fmt.Errorf("kill process group %d: %w", process.Pid, err)
	}

	return nil
}
