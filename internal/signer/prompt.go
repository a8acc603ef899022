// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package signer

import "bytes"

// promptWatcher is an [io.Writer] that detects the prompt in the data written
// to it, even if the prompt is split across multiple writes.
//
// It must only be written by a single goroutine. [promptWatcher.Found] may be
// used from any goroutine.
type promptWatcher struct {
	prompt  []byte
	tail    []byte
	matched bool
	found   chan struct{}
}

func newPromptWatcher(prompt string) *promptWatcher {
	return &promptWatcher{
		prompt: []byte(prompt),
		found:  make(chan struct{}),
	}
}

// Write implements [io.Writer]. It never fails.
func (w *promptWatcher) Write(data []byte) (int, error) {
	if w.matched || len(w.prompt) == 0 {
		return len(data), nil
	}

	w.tail = append(w.tail, data...)

	if bytes.Contains(w.tail, w.prompt) {
		w.matched = true
		w.tail = nil
		close(w.found)

		return len(data), nil
	}

	// Only a prompt prefix at the very end can still be completed by the
	// next write.
	if keep := len(w.prompt) - 1; len(w.tail) > keep {
		w.tail = append(w.tail[:0], w.tail[len(w.tail)-keep:]...)
	}

	return len(data), nil
}

// Found returns a channel that is closed once the prompt has been seen.
func (w *promptWatcher) Found() <-chan struct{} {
	return w.found
}
