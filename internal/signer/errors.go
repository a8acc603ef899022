// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package signer

import "errors"

var (
	// ErrSpawn is returned if the signing tool could not be started, e.g.
	// because it is not installed or not found in PATH.
	ErrSpawn = errors.New("start signing tool")

	// ErrCompletionTimeout is returned if the signing tool did not terminate
	// within [Timeouts.Completion]. The tool has been killed.
	ErrCompletionTimeout = errors.New("signing tool did not terminate in time")

	// ErrSpawnTimeout is the cause of the run context if the signing tool
	// ran longer than [Timeouts.Spawn]. The tool has been killed.
	ErrSpawnTimeout = errors.New("signing tool exceeded its run time limit")

	// ErrToolSignaled is returned if the signing tool was terminated by a
	// signal and did not return an exit code.
	ErrToolSignaled = errors.New("signing tool terminated by signal")

	// ErrPromptNotSeen is logged if the prompt did not appear within
	// [Timeouts.Prompt]. It is not returned, since the tool may not need a
	// password at all.
	ErrPromptNotSeen = errors.New("prompt not seen")
)

// ArgumentError indicates an invalid [Spec].
type ArgumentError struct {
	msg string
}

// Error implements the [error] interface.
func (e *ArgumentError) Error() string {
	return "argument error: " + e.msg
}

// Is implements the [errors.Is] interface.
func (*ArgumentError) Is(other error) bool {
	_, ok := other.(*ArgumentError)
	return ok
}

// CommandError wraps any error occurred during a signing run.
//
// With Tool set, the signing tool itself reported failure with ExitCode.
// Otherwise, running the tool failed and ExitCode is not set.
type CommandError struct {
	Err      error
	Tool     bool
	ExitCode int
}

// Error implements the [error] interface.
func (e *CommandError) Error() string {
	scope := "host"
	if e.Tool {
		scope = "signing tool"
	}

	return scope + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*CommandError) Is(other error) bool {
	_, ok := other.(*CommandError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// IsToolError reports whether err is a [CommandError] reported by the signing
// tool itself.
func IsToolError(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr) && cmdErr.Tool
}
