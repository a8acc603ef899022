// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package signer_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gterm/sign-package/internal/signer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSpec(t *testing.T) {
	spec := signer.DefaultSpec("/repo")

	expected := signer.Spec{
		Command:      []string{"tauri", "signer"},
		ProjectRoot:  "/repo",
		ArtifactPath: "src-tauri/target/release/bundle/macos/GTerm.app.tar.gz",
		KeyPath:      "~/.tauri/gterm.key",
		Prompt:       "Password:",
		Timeouts: signer.Timeouts{
			Spawn:      30 * time.Second,
			Prompt:     5 * time.Second,
			Completion: 10 * time.Second,
		},
	}

	assert.Equal(t, expected, spec)
	require.NoError(t, spec.Validate())
}

func TestSpec_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*signer.Spec)
		expectedErr error
	}{
		{
			name:   "defaults",
			modify: func(*signer.Spec) {},
		},
		{
			name: "empty prompt",
			modify: func(s *signer.Spec) {
				s.Prompt = ""
			},
		},
		{
			name: "no command",
			modify: func(s *signer.Spec) {
				s.Command = nil
			},
			expectedErr: &signer.ArgumentError{},
		},
		{
			name: "empty executable",
			modify: func(s *signer.Spec) {
				s.Command = []string{""}
			},
			expectedErr: &signer.ArgumentError{},
		},
		{
			name: "no artifact",
			modify: func(s *signer.Spec) {
				s.ArtifactPath = ""
			},
			expectedErr: &signer.ArgumentError{},
		},
		{
			name: "no key",
			modify: func(s *signer.Spec) {
				s.KeyPath = ""
			},
			expectedErr: &signer.ArgumentError{},
		},
		{
			name: "zero prompt timeout",
			modify: func(s *signer.Spec) {
				s.Timeouts.Prompt = 0
			},
			expectedErr: &signer.ArgumentError{},
		},
		{
			name: "negative completion timeout",
			modify: func(s *signer.Spec) {
				s.Timeouts.Completion = -time.Second
			},
			expectedErr: &signer.ArgumentError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := signer.DefaultSpec("/repo")
			tt.modify(&spec)

			err := spec.Validate()
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestSpec_Artifact(t *testing.T) {
	tests := []struct {
		name         string
		projectRoot  string
		artifactPath string
		expected     string
	}{
		{
			name:         "default",
			projectRoot:  "/repo",
			artifactPath: signer.DefaultArtifactPath,
			expected: "/repo/src-tauri/target/release/bundle/macos/" +
				"GTerm.app.tar.gz",
		},
		{
			name:         "absolute artifact ignores project root",
			projectRoot:  "/repo",
			artifactPath: "/dist/GTerm.app.tar.gz",
			expected:     "/dist/GTerm.app.tar.gz",
		},
		{
			name:         "cleaned",
			projectRoot:  "/repo/scripts/..",
			artifactPath: "./dist/../GTerm.app.tar.gz",
			expected:     "/repo/GTerm.app.tar.gz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := signer.Spec{
				ProjectRoot:  tt.projectRoot,
				ArtifactPath: tt.artifactPath,
			}

			actual, err := spec.Artifact()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestSpec_Artifact_RelativeProjectRoot(t *testing.T) {
	spec := signer.Spec{
		ProjectRoot:  ".",
		ArtifactPath: "bundle.tar.gz",
	}

	actual, err := spec.Artifact()
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(actual), "path should be absolute")
	assert.Equal(t, "bundle.tar.gz", filepath.Base(actual))
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/signer")

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "home only",
			path:     "~",
			expected: "/home/signer",
		},
		{
			name:     "home relative",
			path:     "~/.tauri/gterm.key",
			expected: "/home/signer/.tauri/gterm.key",
		},
		{
			name:     "absolute",
			path:     "/keys/gterm.key",
			expected: "/keys/gterm.key",
		},
		{
			name:     "other user is not expanded",
			path:     "~other/gterm.key",
			expected: "~other/gterm.key",
		},
		{
			name:     "relative",
			path:     "keys/gterm.key",
			expected: "keys/gterm.key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := signer.ExpandHome(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestSpec_Key(t *testing.T) {
	t.Setenv("HOME", "/home/signer")

	spec := signer.DefaultSpec("/repo")

	actual, err := spec.Key()
	require.NoError(t, err)
	assert.Equal(t, "/home/signer/.tauri/gterm.key", actual)
}

func TestSpec_Args(t *testing.T) {
	spec := signer.DefaultSpec("/repo")

	args := spec.Args("/repo/GTerm.app.tar.gz", "/keys/gterm.key")

	expected := []string{
		"signer",
		"sign",
		"/repo/GTerm.app.tar.gz",
		"--private-key-path",
		"/keys/gterm.key",
	}

	assert.Equal(t, expected, args)
	assert.Equal(t, []string{"tauri", "signer"}, spec.Command,
		"command should not be modified")
}
