// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"fmt"
	"os"
)

// WriterV10 builds a V10 archive. V10 never stores compressed payloads:
// the compress parameter is not exposed on this writer.
type WriterV10 struct {
	path string
	pendingFileList
}

// NewWriterV10 returns a writer that will produce path on Save.
func NewWriterV10(path string) *WriterV10 {
	return &WriterV10{path: path}
}

// AddFile enqueues name↦data, always stored raw.
func (w *WriterV10) AddFile(name string, data []byte) error {
	return w.addFile(name, data, false)
}

// AddFileFromPath reads fsPath and enqueues it under name, always stored raw.
func (w *WriterV10) AddFileFromPath(name string, fsPath string) error {
	return w.addFileFromPath(name, fsPath, false)
}

// Save writes the accumulated files to w.path as a V10 archive.
func (w *WriterV10) Save() error {
	if w == nil {
		return ErrNilWriter
	}

	f, err := os.OpenFile(w.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("%w: create %q: %w", ErrIO, w.path, err)
	}
	defer func() { _ = f.Close() }()

	numFiles := uint32(len(w.files))
	dataOffset := int64(v10HeaderOffset) + v10HeaderSize + int64(numFiles)*v10EntrySize

	if _, err := f.Write(signature[:]); err != nil {
		return fmt.Errorf("%w: write signature: %w", ErrIO, err)
	}

	header := make([]byte, v10HeaderSize)
	le.PutUint32(header[0:4], 10)
	le.PutUint32(header[4:8], uint32(dataOffset))
	le.PutUint32(header[8:12], uint32(numFiles)*v10EntrySize)
	le.PutUint16(header[12:14], 1) // num_parts
	header[14] = 0                 // flags
	header[15] = 0                 // priority
	le.PutUint32(header[16:20], numFiles)
	if _, err := f.Write(header); err != nil {
		return fmt.Errorf("%w: write header: %w", ErrIO, err)
	}

	current := uint32(0)
	rec := make([]byte, v10EntrySize)
	for _, file := range w.files {
		clear(rec)
		if err := putName(rec[:nameFieldSize], file.name); err != nil {
			return err
		}

		size := uint32(len(file.data))
		le.PutUint32(rec[nameFieldSize:nameFieldSize+4], current)
		le.PutUint32(rec[nameFieldSize+4:nameFieldSize+8], size)
		le.PutUint32(rec[nameFieldSize+8:nameFieldSize+12], 0) // uncompressed_size sentinel
		le.PutUint32(rec[nameFieldSize+12:nameFieldSize+16], 0)
		le.PutUint32(rec[nameFieldSize+16:nameFieldSize+20], 0) // flags
		le.PutUint32(rec[nameFieldSize+20:nameFieldSize+24], 0) // crc, unused

		if _, err := f.Write(rec); err != nil {
			return fmt.Errorf("%w: write directory entry %q: %w", ErrIO, file.name, err)
		}

		current += size
	}

	for _, file := range w.files {
		if _, err := f.Write(file.data); err != nil {
			return fmt.Errorf("%w: write payload %q: %w", ErrIO, file.name, err)
		}
	}

	return nil
}
