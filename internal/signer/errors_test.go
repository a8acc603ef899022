// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package signer_test

import (
	"fmt"
	"testing"

	"github.com/gterm/sign-package/internal/exitcode"
	"github.com/gterm/sign-package/internal/signer"
	"github.com/stretchr/testify/assert"
)

func TestCommandError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *signer.CommandError
		expected string
	}{
		{
			name:     "host",
			err:      &signer.CommandError{Err: signer.ErrCompletionTimeout},
			expected: "host: signing tool did not terminate in time",
		},
		{
			name: "tool",
			err: &signer.CommandError{
				Err:      exitcode.Error(2),
				Tool:     true,
				ExitCode: 2,
			},
			expected: "signing tool: non-zero exit code: 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.expected)
		})
	}
}

func TestCommandError_Is(t *testing.T) {
	err := fmt.Errorf("run: %w", &signer.CommandError{
		Err: signer.ErrSpawn,
	})

	assert.ErrorIs(t, err, &signer.CommandError{})
	assert.ErrorIs(t, err, signer.ErrSpawn)
	assert.NotErrorIs(t, assert.AnError, &signer.CommandError{})
}

func TestIsToolError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		assert assert.BoolAssertionFunc
	}{
		{
			name:   "nil",
			assert: assert.False,
		},
		{
			name:   "other",
			err:    assert.AnError,
			assert: assert.False,
		},
		{
			name:   "host",
			err:    &signer.CommandError{Err: signer.ErrSpawn},
			assert: assert.False,
		},
		{
			name: "wrapped tool",
			err: fmt.Errorf("sign: %w", &signer.CommandError{
				Err:      exitcode.Error(3),
				Tool:     true,
				ExitCode: 3,
			}),
			assert: assert.True,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.assert(t, signer.IsToolError(tt.err))
		})
	}
}

func TestArgumentError(t *testing.T) {
	spec := signer.Spec{}
	err := spec.Validate()

	assert.EqualError(t, err, "argument error: no signing tool command given")
	assert.ErrorIs(t, err, &signer.ArgumentError{})
}
