// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package signer

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

const (
	// DefaultArtifactPath is the bundle built by "tauri build" on macOS,
	// relative to the project root.
	DefaultArtifactPath = "src-tauri/target/release/bundle/macos/GTerm.app.tar.gz"

	// DefaultKeyPath is the private key generated by "tauri signer generate".
	DefaultKeyPath = "~/.tauri/gterm.key"

	// DefaultPrompt is printed by the signing tool when it asks for the
	// private key password.
	DefaultPrompt = "Password:"

	DefaultSpawnTimeout      = 30 * time.Second
	DefaultPromptTimeout     = 5 * time.Second
	DefaultCompletionTimeout = 10 * time.Second
)

// DefaultCommand returns the default signing tool command. The subcommand
// "sign" and its arguments are appended to it.
func DefaultCommand() []string {
	return []string{"tauri", "signer"}
}

// Timeouts bounds the waits of a single run.
type Timeouts struct {
	// Spawn is the upper limit of the tool's run time, measured from
	// spawning it.
	Spawn time.Duration

	// Prompt is the time to wait for the password prompt.
	Prompt time.Duration

	// Completion is the time to wait for the tool's termination after the
	// prompt has been answered or the prompt window has passed.
	Completion time.Duration
}

// Spec describes a single signing run.
type Spec struct {
	// Command is the signing tool executable followed by the arguments that
	// precede the "sign" subcommand.
	Command []string

	// ProjectRoot is the directory relative artifact paths are resolved
	// against. The tool runs in it.
	ProjectRoot string

	// ArtifactPath is the bundle to sign. If relative, it is relative to
	// ProjectRoot.
	ArtifactPath string

	// KeyPath is the private key passed to the tool. A leading "~/" is
	// replaced by the home directory.
	KeyPath string

	// Prompt is answered with Response once. If empty, no prompt is
	// expected.
	Prompt string

	// Response is written followed by a line break if Prompt is seen. The
	// empty default only works for keys without password.
	Response string

	Timeouts Timeouts
}

// DefaultSpec returns a [Spec] with all defaults set for the given project
// root.
func DefaultSpec(projectRoot string) Spec {
	return Spec{
		Command:      DefaultCommand(),
		ProjectRoot:  projectRoot,
		ArtifactPath: DefaultArtifactPath,
		KeyPath:      DefaultKeyPath,
		Prompt:       DefaultPrompt,
		Timeouts: Timeouts{
			Spawn:      DefaultSpawnTimeout,
			Prompt:     DefaultPromptTimeout,
			Completion: DefaultCompletionTimeout,
		},
	}
}

// Validate checks the [Spec] for obvious issues. Existence of files is not
// checked. This is left to the signing tool.
func (s *Spec) Validate() error {
	if len(s.Command) == 0 || s.Command[0] == "" {
		return &ArgumentError{"no signing tool command given"}
	}

	if s.ArtifactPath == "" {
		return &ArgumentError{"no artifact path given"}
	}

	if s.KeyPath == "" {
		return &ArgumentError{"no key path given"}
	}

	timeouts := map[string]time.Duration{
		"spawn":      s.Timeouts.Spawn,
		"prompt":     s.Timeouts.Prompt,
		"completion": s.Timeouts.Completion,
	}

	for _, name := range []string{"spawn", "prompt", "completion"} {
		if timeouts[name] <= 0 {
			return &ArgumentError{name + " timeout must be positive"}
		}
	}

	return nil
}

// Artifact returns the absolute artifact path.
func (s *Spec) Artifact() (string, error) {
	path := s.ArtifactPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.ProjectRoot, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}

	return abs, nil
}

// Key returns the key path with the home directory expanded.
func (s *Spec) Key() (string, error) {
	return ExpandHome(s.KeyPath)
}

// Args returns the arguments for the signing tool executable.
func (s *Spec) Args(artifact, key string) []string {
	args := slices.Clone(s.Command[1:])

	return append(args, "sign", artifact, "--private-key-path", key)
}

// ExpandHome replaces a leading "~" path element with the user's home
// directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
