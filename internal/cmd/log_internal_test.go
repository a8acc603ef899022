// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLogFormat(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "log"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = file.Close() })

	tests := []struct {
		name     string
		format   string
		expected string
	}{
		{
			name:     "explicit text",
			format:   logFormatText,
			expected: logFormatText,
		},
		{
			name:     "explicit json",
			format:   logFormatJSON,
			expected: logFormatJSON,
		},
		{
			name:     "auto on regular file",
			format:   logFormatAuto,
			expected: logFormatJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveLogFormat(file, tt.format))
		})
	}

	assert.Equal(t, logFormatJSON, resolveLogFormat(&bytes.Buffer{}, logFormatAuto),
		"writer without file descriptor")
}

func TestSetupLogging(t *testing.T) {
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	tests := []struct {
		name           string
		format         string
		debug          bool
		expectedOutput string
	}{
		{
			name:           "text warn",
			format:         logFormatText,
			expectedOutput: "level=WARN msg=warn\n",
		},
		{
			name:   "text debug",
			format: logFormatText,
			debug:  true,
			expectedOutput: "level=DEBUG msg=debug\n" +
				"level=WARN msg=warn\n",
		},
		{
			name:           "json warn",
			format:         logFormatJSON,
			expectedOutput: "{\"level\":\"WARN\",\"msg\":\"warn\"}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			setupLogging(&buf, tt.format, tt.debug)

			slog.Debug("debug")
			slog.Warn("warn")

			assert.Equal(t, tt.expectedOutput, stripTime(buf.String()))
		})
	}
}

// stripTime removes the leading time attribute of each text or JSON record.
func stripTime(output string) string {
	lines := bytes.Split([]byte(output), []byte("\n"))
	for i, line := range lines {
		switch {
		case bytes.HasPrefix(line, []byte("time=")):
			_, rest, _ := bytes.Cut(line, []byte(" "))
			lines[i] = rest
		case bytes.HasPrefix(line, []byte("{\"time\":")):
			_, rest, _ := bytes.Cut(line, []byte(","))
			lines[i] = append([]byte("{"), rest...)
		}
	}

	return string(bytes.Join(lines, []byte("\n")))
}
