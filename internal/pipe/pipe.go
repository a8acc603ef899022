// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pipe

import (
	"errors"
	"io"
	"maps"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Pipe copies a single output stream.
type Pipe struct {
	// Name used in errors and logs.
	Name string

	// InputReader is the stream to copy from.
	InputReader io.Reader

	// InputCloser is closed if the pipe does not terminate in time. It is
	// usually the same object as InputReader.
	InputCloser io.Closer

	// Output receives the copied data.
	Output io.Writer

	// CopyFunc copies from InputReader to Output.
	CopyFunc CopyFunc

	// MayBeSilent suppresses [ErrNoOutput] if nothing was copied.
	MayBeSilent bool
}

func (p *Pipe) copy() (int64, error) {
	written, err := p.CopyFunc(p.Output, p.InputReader)
	if err != nil {
		return written, &Error{Name: p.Name, Err: err}
	}

	if written == 0 && !p.MayBeSilent {
		return written, &Error{Name: p.Name, Err: ErrNoOutput}
	}

	return written, nil
}

// Pipes runs [Pipe]s concurrently.
//
// The zero value is ready to use.
type Pipes struct {
	group errgroup.Group

	mu      sync.Mutex
	pipes   []*Pipe
	written map[string]int64
}

// Run starts copying the given [Pipe] in the background.
func (p *Pipes) Run(pipe *Pipe) {
	p.mu.Lock()
	p.pipes = append(p.pipes, pipe)
	p.mu.Unlock()

	p.group.Go(func() error {
		written, err := pipe.copy()

		p.mu.Lock()
		defer p.mu.Unlock()

		if p.written == nil {
			p.written = make(map[string]int64)
		}

		p.written[pipe.Name] = written

		return err
	})
}

// Wait waits for all pipes to terminate.
//
// If they do not terminate within the given timeout, the inputs of all pipes
// are closed and [ErrWaitTimeout] is returned. The copy errors that follow the
// close are joined to it.
func (p *Pipes) Wait(timeout time.Duration) error {
	done := make(chan error, 1)

	go func() {
		done <- p.group.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
	}

	closeErr := p.closeInputs()

	// Copies terminate once their input is closed. Give them the same time
	// again so a misbehaving closer cannot block forever.
	timer.Reset(timeout)

	select {
	case err := <-done:
		return errors.Join(ErrWaitTimeout, closeErr, err)
	case <-timer.C:
		return errors.Join(ErrWaitTimeout, closeErr)
	}
}

// Len returns the number of pipes started.
func (p *Pipes) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.pipes)
}

// BytesWritten returns the number of bytes each terminated pipe has written
// by pipe name.
func (p *Pipes) BytesWritten() map[string]int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return maps.Clone(p.written)
}

func (p *Pipes) closeInputs() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error

	for _, pipe := range p.pipes {
		if pipe.InputCloser == nil {
			continue
		}

		err := pipe.InputCloser.Close()
		if err != nil {
			errs = append(errs, &Error{Name: pipe.Name, Err: err})
		}
	}

	return errors.Join(errs...)
}
