// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

// Package archive writes zip archives atomically: entries are streamed into a
// temporary file next to the destination, which is renamed into place on Close.
package archive

import (
	_ "crypto/sha256" // registers digest.Canonical
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/opencontainers/go-digest"
)

// Sentinel errors for archive writing.
var (
	// ErrClosed indicates use of a writer after Close or Abort.
	ErrClosed = errors.New("archive writer is closed")
	// ErrInvalidEntryName indicates an entry name that is empty, absolute or escapes the archive root.
	ErrInvalidEntryName = errors.New("invalid archive entry name")
	// ErrNotRegular indicates a source that is not a regular file.
	ErrNotRegular = errors.New("not a regular file")
)

// Result describes a finished archive.
type Result struct {
	// Path is the final archive location.
	Path string `json:"path" yaml:"path"`
	// Digest is the digest of the archive file contents.
	Digest digest.Digest `json:"digest" yaml:"digest"`
	// Files is the number of file entries written.
	Files int `json:"files" yaml:"files"`
	// Size is the archive file size in bytes.
	Size int64 `json:"size" yaml:"size"`
	// Bytes is the total uncompressed size of the entries.
	Bytes int64 `json:"bytes" yaml:"bytes"`
}

// writeCounter is an io.Writer that only records the number of bytes written.
type writeCounter struct {
	written int64
}

// Write implements io.Writer.
func (wc *writeCounter) Write(p []byte) (int, error) {
	n := len(p)
	wc.written += int64(n)
	return n, nil
}

// Writer streams files into a zip archive.
// It is not safe for concurrent use.
type Writer struct {
	dst      string
	tmp      *os.File
	zw       *zip.Writer
	digester digest.Digester
	size     *writeCounter
	files    int
	bytes    int64
	closed   bool
}

// Create starts a new archive that will be placed at dst on Close.
// The destination directory must exist.
func Create(dst string) (*Writer, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp archive for %s: %w", dst, err)
	}

	d := digest.Canonical.Digester()
	sz := &writeCounter{}
	mw := io.MultiWriter(d.Hash(), tmp, sz)

	return &Writer{
		dst:      dst,
		tmp:      tmp,
		zw:       zip.NewWriter(mw),
		digester: d,
		size:     sz,
	}, nil
}

// AddFile writes the regular file src as entry name, keeping its mode and
// modification time. Name is slash separated and relative to the archive root.
func (w *Writer) AddFile(src, name string) error {
	if w.closed {
		return ErrClosed
	}

	entry, err := cleanEntryName(name)
	if err != nil {
		return err
	}

	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return err
	}

	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegular, src)
	}

	header, err := zip.FileInfoHeader(fi)
	if err != nil {
		return err
	}

	header.Name = entry
	header.Method = zip.Deflate

	ew, err := w.zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", entry, err)
	}

	n, err := io.Copy(ew, f)
	if err != nil {
		return fmt.Errorf("write entry %s: %w", entry, err)
	}

	w.files++
	w.bytes += n
	return nil
}

// Close finishes the archive and renames it into place.
// On failure the temporary file is removed and nothing is left at the destination.
func (w *Writer) Close() (*Result, error) {
	if w.closed {
		return nil, ErrClosed
	}
	w.closed = true

	if err := w.zw.Close(); err != nil {
		w.discard()
		return nil, fmt.Errorf("finish archive %s: %w", w.dst, err)
	}

	if err := w.tmp.Close(); err != nil {
		_ = os.Remove(w.tmp.Name())
		return nil, fmt.Errorf("close archive %s: %w", w.dst, err)
	}

	if err := os.Chmod(w.tmp.Name(), 0o644); err != nil {
		_ = os.Remove(w.tmp.Name())
		return nil, err
	}

	if err := os.Rename(w.tmp.Name(), w.dst); err != nil {
		_ = os.Remove(w.tmp.Name())
		return nil, fmt.Errorf("rename archive to %s: %w", w.dst, err)
	}

	return &Result{
		Path:   w.dst,
		Digest: w.digester.Digest(),
		Files:  w.files,
		Size:   w.size.written,
		Bytes:  w.bytes,
	}, nil
}

// Abort drops the archive. It is a no-op after Close.
func (w *Writer) Abort() {
	if w.closed {
		return
	}
	w.closed = true

	_ = w.zw.Close()
	w.discard()
}

// discard closes and removes the temporary file.
func (w *Writer) discard() {
	_ = w.tmp.Close()
	_ = os.Remove(w.tmp.Name())
}

// cleanEntryName validates a slash separated entry name.
func cleanEntryName(name string) (string, error) {
	name = strings.ReplaceAll(name, `\`, "/")
	if name == "" || strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidEntryName, name)
	}

	cleaned := path.Clean(name)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidEntryName, name)
	}

	return cleaned, nil
}
