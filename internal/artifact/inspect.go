// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package artifact

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
)

var (
	// ErrInvalidArchive is returned if the artifact is not a gzip compressed
	// tar archive.
	ErrInvalidArchive = errors.New("invalid archive")

	// ErrNotRegular is returned if the artifact is not a regular file.
	ErrNotRegular = errors.New("not a regular file")

	// ErrEmpty is returned if the archive has no entries.
	ErrEmpty = errors.New("archive has no entries")
)

// Info describes an inspected artifact.
type Info struct {
	// Path of the artifact as given to [Inspect].
	Path string

	// Size of the compressed artifact file in bytes.
	Size int64

	// ContentSize is the sum of all regular file sizes in the archive.
	ContentSize int64

	// Entries is the number of entries in the archive.
	Entries int

	// Root is the first path element of the first entry, usually the
	// application bundle directory like "GTerm.app".
	Root string
}

// LogValue implements [slog.LogValuer].
func (i *Info) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", i.Path),
		slog.String("size", humanize.IBytes(uint64(max(i.Size, 0)))),
		slog.String("content", humanize.IBytes(uint64(max(i.ContentSize, 0)))),
		slog.Int("entries", i.Entries),
		slog.String("root", i.Root),
	)
}

// Inspect checks that the file at the given path is a readable gzip
// compressed tar archive with at least one entry. Only the tar headers are
// evaluated, file contents are skipped.
func Inspect(filePath string) (*Info, error) {
	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	if !stat.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	info := &Info{
		Path: filePath,
		Size: stat.Size(),
	}

	err = info.read(file)
	if err != nil {
		return nil, err
	}

	return info, nil
}

func (i *Info) read(r io.Reader) error {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("%w: gzip: %v", ErrInvalidArchive, err)
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)

	for {
		header, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("%w: tar: %v", ErrInvalidArchive, err)
		}

		if i.Entries == 0 {
			i.Root = rootElement(header.Name)
		}

		i.Entries++

		if header.Typeflag == tar.TypeReg {
			i.ContentSize += header.Size
		}
	}

	if i.Entries == 0 {
		return ErrEmpty
	}

	return nil
}

func rootElement(name string) string {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	root, _, _ := strings.Cut(name, "/")

	return root
}
