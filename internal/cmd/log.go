// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"
	"log/slog"

	"golang.org/x/term"
)

const (
	logFormatAuto = "auto"
	logFormatText = "text"
	logFormatJSON = "json"
)

func logFormats() []string {
	return []string{logFormatAuto, logFormatText, logFormatJSON}
}

// fdWriter is implemented by [os.File].
type fdWriter interface {
	io.Writer
	Fd() uintptr
}

// resolveLogFormat returns the log format to use for the writer. With
// [logFormatAuto], text is used for terminals and JSON for anything else.
func resolveLogFormat(writer io.Writer, format string) string {
	if format != logFormatAuto {
		return format
	}

	file, ok := writer.(fdWriter)
	if ok && term.IsTerminal(int(file.Fd())) { //nolint:gosec
		return logFormatText
	}

	return logFormatJSON
}

func setupLogging(writer io.Writer, format string, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler

	switch resolveLogFormat(writer, format) {
	case logFormatJSON:
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	slog.SetDefault(slog.New(handler))
}
