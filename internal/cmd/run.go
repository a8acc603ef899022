// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gterm/sign-package/internal/artifact"
	"github.com/gterm/sign-package/internal/exitcode"
	"github.com/gterm/sign-package/internal/signer"
)

const (
	name = "sign-package"

	successMessage = "✓ Package signed successfully!"
	failureMessage = "✗ Signing failed with exit code %d\n"
)

// IO provides output details for the command.
type IO struct {
	Stdout io.Writer
	Stderr io.Writer
}

// inspectArtifact checks the artifact before it is handed to the signing
// tool. Failures are only returned if required. Otherwise the artifact is
// only inspected for debug logging.
func inspectArtifact(ctx context.Context, spec *signer.Spec, required bool) error {
	if !required && !slog.Default().Enabled(ctx, slog.LevelDebug) {
		return nil
	}

	path, err := spec.Artifact()
	if err != nil {
		return fmt.Errorf("artifact path: %w", err)
	}

	info, err := artifact.Inspect(path)
	if err != nil {
		if required {
			return fmt.Errorf("check artifact: %w", err)
		}

		slog.Debug("Failed to inspect artifact",
			slog.String("path", path),
			slog.Any("error", err))

		return nil
	}

	slog.Debug("Inspected artifact", slog.Any("artifact", info))

	return nil
}

func run(ctx context.Context, cfg *runConfig, output IO) error {
	err := inspectArtifact(ctx, &cfg.spec, cfg.checkArtifact)
	if err != nil {
		return err
	}

	invoker, err := signer.NewInvoker(cfg.spec)
	if err != nil {
		return fmt.Errorf("invoker: %w", err)
	}

	result, err := invoker.Run(ctx)

	if result != nil {
		slog.Debug("Signing tool finished",
			slog.Int("exit_code", result.ExitCode),
			slog.Bool("prompt_answered", result.PromptAnswered))

		_, writeErr := output.Stdout.Write(result.Output)
		if writeErr != nil {
			slog.Warn("Failed to write tool output",
				slog.Any("error", writeErr))
		}
	}

	return err //nolint:wrapcheck
}

func handleParseArgsError(err error, stderr io.Writer) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return exitcode.Success
	}

	// ParseArgs already prints errors, so we just exit with usage error.
	if errors.Is(err, &ParseArgsError{}) {
		return exitcode.Usage
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)

	return exitcode.Failure
}

func handleRunError(err error, output IO) int {
	if err == nil {
		fmt.Fprintln(output.Stdout, successMessage)
		return exitcode.Success
	}

	exitCode, _ := exitcode.From(err)

	// The tool ran and reported failure itself. Its output has been printed
	// already, so only the summary is added.
	if signer.IsToolError(err) {
		fmt.Fprintf(output.Stdout, failureMessage, exitCode)
		return exitCode
	}

	fmt.Fprintf(output.Stderr, "Error: %v\n", err)

	return exitcode.Failure
}

// Run is the main entry point for the CLI command. The first argument is the
// program name.
func Run(ctx context.Context, args []string, cfg IO) int {
	setupLogging(cfg.Stderr, logFormatAuto, false)

	progName := name
	if len(args) > 0 {
		progName, args = args[0], args[1:]
	}

	flags := newFlags(progName, cfg.Stderr)

	err := flags.ParseArgs(args)
	if err != nil {
		return handleParseArgsError(err, cfg.Stderr)
	}

	setupLogging(cfg.Stderr, flags.logFormat, flags.debug)

	runCfg, err := flags.runConfig()
	if err != nil {
		fmt.Fprintf(cfg.Stderr, "Error: %v\n", err)
		return exitcode.Usage
	}

	slog.Debug("Signing artifact",
		slog.Any("command", runCfg.spec.Command),
		slog.String("artifact", runCfg.spec.ArtifactPath),
		slog.String("key", runCfg.spec.KeyPath),
		slog.String("project_root", runCfg.spec.ProjectRoot))

	err = run(ctx, runCfg, cfg)

	return handleRunError(err, cfg)
}
