// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"

	"github.com/gterm/sign-package/internal/signer"
)

const usageMessage = `Usage of 'sign-package':
    sign-package [flags...]

Signs the GTerm macOS bundle with the Tauri signing tool. Run it from the
project root or use -project-root. Without any flags the tool is run as:

    tauri signer sign <project-root>/` + signer.DefaultArtifactPath + ` \
        --private-key-path ` + signer.DefaultKeyPath + `

If the tool asks for the key password, an empty line is sent. Set "response"
in the config file for keys with a password.

All settings but -config and -project-root can also be provided via the YAML
config file ` + localConfigFile + ` in the project root. Flags take precedence.
`

type flags struct {
	flagSet *flag.FlagSet

	projectRoot   string
	configPath    string
	tool          string
	artifact      string
	key           string
	prompt        string
	timeouts      signer.Timeouts
	checkArtifact bool
	logFormat     string
	debug         bool
	version       bool

	// set holds the names of all flags given on the command line.
	set map[string]bool
}

func newFlags(name string, output io.Writer) *flags {
	defaults := signer.DefaultSpec("")

	flags := &flags{
		tool:      defaults.Command[0],
		artifact:  defaults.ArtifactPath,
		key:       defaults.KeyPath,
		prompt:    defaults.Prompt,
		timeouts:  defaults.Timeouts,
		logFormat: logFormatAuto,
		set:       map[string]bool{},
	}

	flags.initFlagset(name, output)

	return flags
}

func (f *flags) initFlagset(name string, output io.Writer) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = f.usage

	flagSet.StringVar(
		&f.configPath,
		"config",
		f.configPath,
		"YAML config file (default \"<project-root>/"+localConfigFile+"\")",
	)

	flagSet.StringVar(
		&f.projectRoot,
		"project-root",
		f.projectRoot,
		"project root directory (default current directory)",
	)

	flagSet.StringVar(
		&f.artifact,
		"artifact",
		f.artifact,
		"bundle to sign, relative to the project root unless absolute",
	)

	flagSet.StringVar(
		&f.key,
		"key",
		f.key,
		"private key file",
	)

	flagSet.StringVar(
		&f.tool,
		"tool",
		f.tool,
		"signing tool executable",
	)

	flagSet.StringVar(
		&f.prompt,
		"prompt",
		f.prompt,
		"password prompt to answer. Empty disables prompt handling",
	)

	flagSet.DurationVar(
		&f.timeouts.Spawn,
		"spawn-timeout",
		f.timeouts.Spawn,
		"maximum run time of the signing tool",
	)

	flagSet.DurationVar(
		&f.timeouts.Prompt,
		"prompt-timeout",
		f.timeouts.Prompt,
		"time to wait for the password prompt",
	)

	flagSet.DurationVar(
		&f.timeouts.Completion,
		"completion-timeout",
		f.timeouts.Completion,
		"time to wait for the signing tool to finish after the prompt",
	)

	flagSet.BoolVar(
		&f.checkArtifact,
		"check-artifact",
		f.checkArtifact,
		"verify the artifact is a non-empty tar.gz archive before signing",
	)

	flagSet.StringVar(
		&f.logFormat,
		"log-format",
		f.logFormat,
		"log format: auto, text, json",
	)

	flagSet.BoolVar(
		&f.debug,
		"debug",
		f.debug,
		"enable debug output",
	)

	flagSet.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)

	f.flagSet = flagSet
}

// ParseArgs parses the command line arguments without the program name.
func (f *flags) ParseArgs(args []string) error {
	err := f.flagSet.Parse(args)
	if err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	f.flagSet.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})

	// With version flag, just print the version and exit. Using [ErrHelp]
	// the main binary is supposed to return with a non error exit code.
	if f.version {
		return f.printVersionInformation()
	}

	if f.flagSet.NArg() > 0 {
		return f.fail("unexpected arguments", fmt.Errorf("%q", f.flagSet.Args()))
	}

	if !slices.Contains(logFormats(), f.logFormat) {
		return f.fail("invalid log format", fmt.Errorf("%q", f.logFormat))
	}

	return nil
}

// runConfig assembles the run configuration from defaults, the config file
// and the flags given on the command line, in that order of precedence.
func (f *flags) runConfig() (*runConfig, error) {
	projectRoot := f.projectRoot
	if projectRoot == "" {
		var err error

		projectRoot, err = os.Getwd()
		if err != nil {
			return nil, &ConfigError{Err: fmt.Errorf("project root: %w", err)}
		}
	}

	configPath := f.configPath
	if configPath == "" {
		configPath = filepath.Join(projectRoot, localConfigFile)
	}

	fileCfg, err := loadConfig(configPath, f.set["config"])
	if err != nil {
		return nil, &ConfigError{Path: configPath, Err: err}
	}

	cfg := &runConfig{
		spec: signer.DefaultSpec(projectRoot),
	}

	fileCfg.apply(cfg)
	f.apply(cfg)

	err = cfg.spec.Validate()
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	return cfg, nil
}

// apply sets all values of flags given on the command line.
func (f *flags) apply(cfg *runConfig) {
	setters := map[string]func(){
		"tool": func() {
			cfg.spec.Command = slices.Clone(cfg.spec.Command)
			if len(cfg.spec.Command) == 0 {
				cfg.spec.Command = signer.DefaultCommand()
			}

			cfg.spec.Command[0] = f.tool
		},
		"artifact":           func() { cfg.spec.ArtifactPath = f.artifact },
		"key":                func() { cfg.spec.KeyPath = f.key },
		"prompt":             func() { cfg.spec.Prompt = f.prompt },
		"spawn-timeout":      func() { cfg.spec.Timeouts.Spawn = f.timeouts.Spawn },
		"prompt-timeout":     func() { cfg.spec.Timeouts.Prompt = f.timeouts.Prompt },
		"completion-timeout": func() { cfg.spec.Timeouts.Completion = f.timeouts.Completion },
		"check-artifact":     func() { cfg.checkArtifact = f.checkArtifact },
	}

	for name, set := range setters {
		if f.set[name] {
			set()
		}
	}
}

// fail fails like flag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) printVersionInformation() error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ErrReadBuildInfo
	}

	fmt.Fprintf(f.flagSet.Output(), "Version: %s\n", buildInfo.Main.Version)

	return ErrHelp
}

func (f *flags) usage() {
	fmt.Fprint(f.flagSet.Output(), usageMessage)
	fmt.Fprintln(f.flagSet.Output(), "\nFlags:")
	f.flagSet.PrintDefaults()
}
