// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package signer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/gterm/sign-package/internal/exitcode"
	"github.com/gterm/sign-package/internal/pipe"
)

// outputDrainTimeout is the time the terminal output may take to drain after
// the tool terminated.
const outputDrainTimeout = time.Second

// Result is the outcome of a run that got as far as starting the tool.
type Result struct {
	// Output is everything the tool wrote to its terminal, with carriage
	// returns removed.
	Output []byte

	// ExitCode of the tool. It is -1 if the tool did not exit on its own.
	ExitCode int

	// PromptAnswered is set if the prompt was seen and the response written.
	PromptAnswered bool
}

// Invoker runs the signing tool as described by its [Spec].
type Invoker struct {
	Spec Spec
}

// NewInvoker validates the given [Spec] and returns an [Invoker] for it.
func NewInvoker(spec Spec) (*Invoker, error) {
	err := spec.Validate()
	if err != nil {
		return nil, err
	}

	return &Invoker{Spec: spec}, nil
}

// Run runs the signing tool once.
//
// It returns no error only if the tool exited with exit code 0. A non-zero
// exit code is returned as [CommandError] with Tool set. Any other failure is
// returned as [CommandError] without Tool set. The [Result] is nil if the tool
// was not started.
func (i *Invoker) Run(ctx context.Context) (*Result, error) {
	artifact, err := i.Spec.Artifact()
	if err != nil {
		return nil, &CommandError{Err: fmt.Errorf("artifact: %w", err)}
	}

	key, err := i.Spec.Key()
	if err != nil {
		return nil, &CommandError{Err: fmt.Errorf("key: %w", err)}
	}

	ctx, cancel := context.WithTimeoutCause(ctx, i.Spec.Timeouts.Spawn,
		ErrSpawnTimeout)
	defer cancel()

	args := i.Spec.Args(artifact, key)

	cmd, tty, err := startTool(ctx, i.Spec.ProjectRoot, i.Spec.Command[0], args)
	if err != nil {
		return nil, &CommandError{Err: err}
	}
	defer tty.Close()

	slog.Debug("Started signing tool",
		slog.String("command", cmd.String()),
		slog.Int("pid", cmd.Process.Pid))

	run := &run{
		spec:    &i.Spec,
		cmd:     cmd,
		tty:     tty,
		watcher: newPromptWatcher(i.Spec.Prompt),
		exited:  make(chan error, 1),
	}

	return run.complete(ctx)
}

// run holds the state of a started tool.
type run struct {
	spec    *Spec
	cmd     *exec.Cmd
	tty     *os.File
	watcher *promptWatcher
	output  syncBuffer
	pipes   pipe.Pipes
	exited  chan error

	result Result
}

func (r *run) complete(ctx context.Context) (*Result, error) {
	r.pipes.Run(&pipe.Pipe{
		Name:        "tty",
		InputReader: r.tty,
		InputCloser: r.tty,
		Output:      io.MultiWriter(&r.output, r.watcher),
		CopyFunc:    pipe.ScrubCR,
		MayBeSilent: true,
	})

	go func() {
		r.exited <- r.cmd.Wait()
	}()

	status := r.answerPrompt(ctx)
	if status == nil {
		var err error

		status, err = r.awaitExit()
		if err != nil {
			return r.finish(), err
		}
	}

	result := r.finish()

	return result, r.evaluate(ctx, status.waitErr)
}

// exitStatus carries the result of [exec.Cmd.Wait].
type exitStatus struct {
	waitErr error
}

// answerPrompt waits for the prompt and answers it. It returns early with the
// tool's [exitStatus] if the tool exits first. Otherwise it returns nil.
func (r *run) answerPrompt(ctx context.Context) *exitStatus {
	if r.spec.Prompt == "" {
		return nil
	}

	timer := time.NewTimer(r.spec.Timeouts.Prompt)
	defer timer.Stop()

	select {
	case <-r.watcher.Found():
		_, err := io.WriteString(r.tty, r.spec.Response+"\n")
		if err != nil {
			// The tool may have exited right after printing the prompt. The
			// outcome is decided by its exit status.
			slog.Warn("Failed to answer prompt", slog.Any("error", err))
			return nil
		}

		r.result.PromptAnswered = true

		slog.Debug("Answered prompt", slog.String("prompt", r.spec.Prompt))
	case err := <-r.exited:
		slog.Debug("Signing tool exited before prompt")
		return &exitStatus{waitErr: err}
	case <-timer.C:
		slog.Debug("Continuing without prompt",
			slog.Any("reason", ErrPromptNotSeen),
			slog.Duration("timeout", r.spec.Timeouts.Prompt))
	case <-ctx.Done():
		// The context kills the tool, so awaitExit returns immediately.
	}

	return nil
}

// awaitExit waits for the tool to exit within the completion timeout. If it
// does not exit in time, its process group is killed and reaped and a
// [CommandError] is returned.
func (r *run) awaitExit() (*exitStatus, error) {
	timer := time.NewTimer(r.spec.Timeouts.Completion)
	defer timer.Stop()

	select {
	case err := <-r.exited:
		return &exitStatus{waitErr: err}, nil
	case <-timer.C:
	}

	slog.Debug("Killing signing tool",
		slog.Duration("timeout", r.spec.Timeouts.Completion))

	killErr := killProcessGroup(r.cmd.Process)

	<-r.exited

	return nil, &CommandError{
		Err: errors.Join(ErrCompletionTimeout, killErr),
	}
}

// finish collects the output once the tool is gone.
func (r *run) finish() *Result {
	err := r.pipes.Wait(outputDrainTimeout)
	if err != nil {
		slog.Warn("Failed to collect output", slog.Any("error", err))
	}

	r.result.Output = r.output.Bytes()
	r.result.ExitCode = r.cmd.ProcessState.ExitCode()

	return &r.result
}

// evaluate translates the error returned by [exec.Cmd.Wait].
func (r *run) evaluate(ctx context.Context, waitErr error) error {
	if waitErr == nil {
		return nil
	}

	if ctx.Err() != nil {
		return &CommandError{Err: context.Cause(ctx)}
	}

	var exitErr *exec.ExitError
	if !errors.As(waitErr, &exitErr) {
		return &CommandError{Err: fmt.Errorf("wait: %w", waitErr)}
	}

	code := exitErr.ExitCode()
	if code < 0 {
		return &CommandError{
			Err: fmt.Errorf("%w: %s", ErrToolSignaled, exitErr.String()),
		}
	}

	return &CommandError{
		Err:      exitcode.Error(code),
		Tool:     true,
		ExitCode: code,
	}
}

// syncBuffer is a [bytes.Buffer] safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(data []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(data) //nolint:wrapcheck
}

func (b *syncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	return bytes.Clone(b.buf.Bytes())
}
