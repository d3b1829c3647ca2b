// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"fmt"
	"os"
)

// WriterV18 builds a single-part V18 archive.
// V18 never splits across parts; as with WriterV13, compress is a genuine
// per-file request honoured when the payload actually shrinks.
type WriterV18 struct {
	path string
	pendingFileList
}

// NewWriterV18 returns a writer that will produce path on Save.
func NewWriterV18(path string) *WriterV18 {
	return &WriterV18{path: path}
}

// AddFile enqueues name↦data with an explicit per-file compress request.
func (w *WriterV18) AddFile(name string, data []byte, compress bool) error {
	return w.addFile(name, data, compress)
}

// AddFileFromPath reads fsPath and enqueues it under name.
func (w *WriterV18) AddFileFromPath(name string, fsPath string, compress bool) error {
	return w.addFileFromPath(name, fsPath, compress)
}

// Save writes the accumulated files as a single V18 archive: signature,
// a placeholder header, payloads, an LZ4-compressed directory, then the
// header is patched in place now that file_list_offset is known.
func (w *WriterV18) Save() error {
	if w == nil {
		return ErrNilWriter
	}

	f, err := os.OpenFile(w.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("%w: create %q: %w", ErrIO, w.path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(signature[:]); err != nil {
		return fmt.Errorf("%w: write signature: %w", ErrIO, err)
	}

	placeholder := make([]byte, v18HeaderSize)
	if _, err := f.Write(placeholder); err != nil {
		return fmt.Errorf("%w: write header placeholder: %w", ErrIO, err)
	}

	type written struct {
		name             string
		offset           uint64
		sizeOnDisk       uint32
		uncompressedSize uint32
		flags            uint8
	}

	entries := make([]written, 0, len(w.files))
	offset := uint64(v18HeaderOffset + v18HeaderSize)
	for _, file := range w.files {
		onDisk, flags, uncompressedSize, err := encodePayload(file.data, file.compress)
		if err != nil {
			return fmt.Errorf("lspk: compress %q: %w", file.name, err)
		}

		if _, err := f.Write(onDisk); err != nil {
			return fmt.Errorf("%w: write payload %q: %w", ErrIO, file.name, err)
		}

		entries = append(entries, written{
			name:             file.name,
			offset:           offset,
			sizeOnDisk:       uint32(len(onDisk)),
			uncompressedSize: uint32(uncompressedSize),
			flags:            flags,
		})
		offset += uint64(len(onDisk))
	}

	fileListOffset := int64(offset)

	rec := make([]byte, v18EntrySize)
	dir := make([]byte, 0, len(entries)*v18EntrySize)
	for _, e := range entries {
		clear(rec)
		if err := putName(rec[:nameFieldSize], e.name); err != nil {
			return err
		}
		lo, hi := splitOffset48(e.offset)
		le.PutUint32(rec[nameFieldSize:nameFieldSize+4], lo)
		le.PutUint16(rec[nameFieldSize+4:nameFieldSize+6], hi)
		rec[nameFieldSize+6] = 0 // archive_part: V18 is always single-part
		rec[nameFieldSize+7] = e.flags
		le.PutUint32(rec[nameFieldSize+8:nameFieldSize+12], e.sizeOnDisk)
		le.PutUint32(rec[nameFieldSize+12:nameFieldSize+16], e.uncompressedSize)
		dir = append(dir, rec...)
	}

	compressed, err := lz4Encode(dir)
	if err != nil {
		if err == errIncompressible {
			compressed = dir
		} else {
			return fmt.Errorf("lspk: compress directory: %w", err)
		}
	}

	var dirHead [8]byte
	le.PutUint32(dirHead[0:4], uint32(len(entries)))
	le.PutUint32(dirHead[4:8], uint32(len(compressed)))
	if _, err := f.Write(dirHead[:]); err != nil {
		return fmt.Errorf("%w: write directory head: %w", ErrIO, err)
	}
	if _, err := f.Write(compressed); err != nil {
		return fmt.Errorf("%w: write compressed directory: %w", ErrIO, err)
	}

	header := make([]byte, v18HeaderSize)
	le.PutUint32(header[0:4], 18)
	le.PutUint64(header[4:12], uint64(fileListOffset))
	le.PutUint32(header[12:16], uint32(8+len(compressed)))
	header[16] = 0 // flags
	header[17] = 0 // priority
	// header[18:34] md5, left zero (not computed or validated)
	le.PutUint16(header[34:36], 1) // num_parts

	if _, err := f.WriteAt(header, v18HeaderOffset); err != nil {
		return fmt.Errorf("%w: patch header: %w", ErrIO, err)
	}

	return nil
}
