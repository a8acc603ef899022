// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/gterm/sign-package/internal/signer"
	"gopkg.in/yaml.v3"
)

// localConfigFile is looked up in the project root if no config file is
// given explicitly.
const localConfigFile = ".sign-package.yaml"

// runConfig is everything a single run needs.
type runConfig struct {
	spec          signer.Spec
	checkArtifact bool
}

// fileConfig is the structure of the YAML config file. Unset fields keep the
// value they had before.
type fileConfig struct {
	Command  []string     `yaml:"command"`
	Artifact *string      `yaml:"artifact"`
	Key      *string      `yaml:"key"`
	Prompt   *string      `yaml:"prompt"`
	Response *string      `yaml:"response"`
	Timeouts fileTimeouts `yaml:"timeouts"`

	CheckArtifact *bool `yaml:"checkArtifact"`
}

type fileTimeouts struct {
	Spawn      *time.Duration `yaml:"spawn"`
	Prompt     *time.Duration `yaml:"prompt"`
	Completion *time.Duration `yaml:"completion"`
}

// loadConfig reads the YAML config file at the given path. A missing file
// results in an empty config unless it is required. Unknown keys are
// rejected.
func loadConfig(path string, required bool) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return &fileConfig{}, nil
		}

		return nil, fmt.Errorf("read: %w", err)
	}

	var cfg fileConfig

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	err = decoder.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return &cfg, nil
}

func (c *fileConfig) apply(cfg *runConfig) {
	if len(c.Command) > 0 {
		cfg.spec.Command = slices.Clone(c.Command)
	}

	setIf(&cfg.spec.ArtifactPath, c.Artifact)
	setIf(&cfg.spec.KeyPath, c.Key)
	setIf(&cfg.spec.Prompt, c.Prompt)
	setIf(&cfg.spec.Response, c.Response)
	setIf(&cfg.spec.Timeouts.Spawn, c.Timeouts.Spawn)
	setIf(&cfg.spec.Timeouts.Prompt, c.Timeouts.Prompt)
	setIf(&cfg.spec.Timeouts.Completion, c.Timeouts.Completion)
	setIf(&cfg.checkArtifact, c.CheckArtifact)
}

func setIf[T any](dst *T, value *T) {
	if value != nil {
		*dst = *value
	}
}
