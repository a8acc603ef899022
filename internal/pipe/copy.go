// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pipe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

const copyBufferSize = 4096

// CopyFunc defines a function that reads the data from the given reader into
// the given writer.
//
// It may copy the data as is, like [io.Copy], or mutate or filter it as needed.
type CopyFunc func(dst io.Writer, src io.Reader) (int64, error)

var _ CopyFunc = io.Copy

var _ CopyFunc = ScrubCR

// ScrubCR is a [CopyFunc] that copies src to dst with all carriage returns
// removed.
//
// Terminals translate line feeds into CRLF. The data is not line buffered, so
// an incomplete line like a password prompt reaches dst as soon as it is read.
// Reading stops without error at the end of the stream, see [IsEndOfStream].
func ScrubCR(dst io.Writer, src io.Reader) (int64, error) {
	var written int64

	buf := make([]byte, copyBufferSize)

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			data := bytes.ReplaceAll(buf[:n], []byte{'\r'}, nil)

			w, err := dst.Write(data)
			written += int64(w)

			if err != nil {
				return written, fmt.Errorf("write: %w", err)
			}
		}

		if readErr != nil {
			if IsEndOfStream(readErr) {
				return written, nil
			}

			return written, fmt.Errorf("read: %w", readErr)
		}
	}
}

// IsEndOfStream reports whether the given read error means the stream ended
// rather than failed.
//
// Besides [io.EOF] this is the case for a closed reader and for EIO, which is
// what reading the controlling side of a pseudo terminal returns once the
// child side has been closed.
func IsEndOfStream(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, unix.EIO) ||
		errors.Is(err, os.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe)
}
