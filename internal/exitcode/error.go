// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package exitcode

import (
	"errors"
	"fmt"
)

const (
	// Success is returned if the signing tool reported success.
	Success = 0

	// Failure is returned for any error that is not an [Error], e.g. if the
	// signing tool could not be started or did not terminate in time.
	Failure = 1

	// Usage is returned if the command line or config file is invalid.
	Usage = 2
)

// Error is an exit code that is considered an error.
type Error int

func (e Error) Error() string {
	return fmt.Sprintf("non-zero exit code: %d", e)
}

func (Error) Is(other error) bool {
	_, ok := other.(Error)
	return ok
}

// Code returns the exit code as basic int type.
func (e Error) Code() int {
	return int(e)
}

// From returns an exit code based on the given error and if the error was an
// [Error].
//
// If the error is nil, the exit code is [Success]. If the error is an [Error]
// the exit code is the return value of [Error.Code]. Otherwise the exit code is
// [Failure].
func From(err error) (int, bool) {
	if err == nil {
		return Success, false
	}

	var exitErr Error
	if errors.As(err, &exitErr) {
		return exitErr.Code(), true
	}

	return Failure, false
}
