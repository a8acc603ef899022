// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pipe_test

import (
	"testing"

	"github.com/gterm/sign-package/internal/pipe"
	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	//nolint:testifylint
	assert.ErrorIs(t, error(&pipe.Error{}), &pipe.Error{})
	assert.NotErrorIs(t, assert.AnError, &pipe.Error{})
}

func TestError_Error(t *testing.T) {
	err := &pipe.Error{Name: "tty", Err: pipe.ErrNoOutput}
	assert.EqualError(t, err, "pipe tty: pipe did not output anything")
	assert.ErrorIs(t, err, pipe.ErrNoOutput)
}
