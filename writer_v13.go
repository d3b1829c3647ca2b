// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"fmt"
	"os"
)

// writtenPayloadV13 records where and how one payload landed during a V13 save.
type writtenPayloadV13 struct {
	name             string
	offset           uint32
	sizeOnDisk       uint32
	uncompressedSize uint32
	archivePart      uint32
	flags            uint8
}

// WriterV13 builds a V13 archive. With maxPartSize == 0 it writes a single
// file; with maxPartSize > 0 it splits payloads across "<base>.pak",
// "<base>_1.pak", "<base>_2.pak", .... V13 is the only
// version this library writes in multi-part form.
type WriterV13 struct {
	path        string
	maxPartSize uint64
	pendingFileList
}

// NewWriterV13 returns a writer that will produce path (and, if
// maxPartSize > 0 and payloads exceed it, sibling continuation parts) on Save.
func NewWriterV13(path string, maxPartSize uint64) *WriterV13 {
	return &WriterV13{path: path, maxPartSize: maxPartSize}
}

// AddFile enqueues name↦data with an explicit per-file compress request.
func (w *WriterV13) AddFile(name string, data []byte, compress bool) error {
	return w.addFile(name, data, compress)
}

// AddFileFromPath reads fsPath and enqueues it under name.
func (w *WriterV13) AddFileFromPath(name string, fsPath string, compress bool) error {
	return w.addFileFromPath(name, fsPath, compress)
}

// Save writes the accumulated files, splitting into parts when maxPartSize
// is configured and exceeded.
func (w *WriterV13) Save() error {
	if w == nil {
		return ErrNilWriter
	}

	if w.maxPartSize == 0 {
		return w.saveSingle()
	}
	return w.saveMultiPart()
}

func (w *WriterV13) saveSingle() error {
	f, err := os.OpenFile(w.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("%w: create %q: %w", ErrIO, w.path, err)
	}
	defer func() { _ = f.Close() }()

	written := make([]writtenPayloadV13, 0, len(w.files))
	var offset int64
	for _, file := range w.files {
		onDisk, flags, uncompressedSize, err := encodePayload(file.data, file.compress)
		if err != nil {
			return fmt.Errorf("lspk: compress %q: %w", file.name, err)
		}

		if _, err := f.Write(onDisk); err != nil {
			return fmt.Errorf("%w: write payload %q: %w", ErrIO, file.name, err)
		}

		written = append(written, writtenPayloadV13{
			name:             file.name,
			offset:           uint32(offset),
			sizeOnDisk:       uint32(len(onDisk)),
			uncompressedSize: uint32(uncompressedSize),
			archivePart:      0,
			flags:            flags,
		})
		offset += int64(len(onDisk))
	}

	return writeV13Footer(f, offset, written, 1)
}

// saveMultiPart implements the part-rollover policy: a
// payload never spans two parts, and the rollover size check is skipped
// whenever the current part is still empty, preserving a quirk
// where an oversized first payload is still written in full to part 0
// (an oversized first payload still lands fully in part 0).
func (w *WriterV13) saveMultiPart() error {
	partFile, partIndex, partSize, err := w.openPart(0)
	if err != nil {
		return err
	}
	defer func() {
		if partFile != nil {
			_ = partFile.Close()
		}
	}()

	written := make([]writtenPayloadV13, 0, len(w.files))
	for _, file := range w.files {
		onDisk, flags, uncompressedSize, err := encodePayload(file.data, file.compress)
		if err != nil {
			return fmt.Errorf("lspk: compress %q: %w", file.name, err)
		}

		payloadLen := uint64(len(onDisk))
		// Check skipped while the part is empty: an oversized first payload stays in part 0.
		if partSize != 0 && partSize+payloadLen > w.maxPartSize {
			if err := partFile.Close(); err != nil {
				return fmt.Errorf("%w: close part %d: %w", ErrIO, partIndex, err)
			}

			partFile, partIndex, partSize, err = w.openPart(partIndex + 1)
			if err != nil {
				return err
			}
		}

		if _, err := partFile.Write(onDisk); err != nil {
			return fmt.Errorf("%w: write payload %q: %w", ErrIO, file.name, err)
		}

		written = append(written, writtenPayloadV13{
			name:             file.name,
			offset:           uint32(partSize),
			sizeOnDisk:       uint32(payloadLen),
			uncompressedSize: uint32(uncompressedSize),
			archivePart:      partIndex,
			flags:            flags,
		})

		partSize += payloadLen
	}

	mainSize := partSize
	if partIndex != 0 {
		if err := partFile.Close(); err != nil {
			return fmt.Errorf("%w: close part %d: %w", ErrIO, partIndex, err)
		}
		partFile, err = os.OpenFile(w.path, os.O_RDWR|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("%w: reopen %q for footer: %w", ErrIO, w.path, err)
		}
		info, statErr := partFile.Stat()
		if statErr != nil {
			return fmt.Errorf("%w: stat %q: %w", ErrIO, w.path, statErr)
		}
		mainSize = uint64(info.Size())
	}

	return writeV13Footer(partFile, int64(mainSize), written, uint16(partIndex+1))
}

// openPart creates (truncating) the part file identified by index and
// returns its handle along with the reset index/size bookkeeping.
func (w *WriterV13) openPart(index uint32) (*os.File, uint32, uint64, error) {
	p := partPath(w.path, index)
	f, err := os.OpenFile(p, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: create part %q: %w", ErrIO, p, err)
	}

	return f, index, 0, nil
}

// writeV13Footer serialises the directory and footer
// §4.3 to f, which must be positioned so that Write appends at dataEnd.
func writeV13Footer(f *os.File, dataEnd int64, written []writtenPayloadV13, numParts uint16) error {
	rec := make([]byte, v10EntrySize)
	dir := make([]byte, 0, len(written)*v10EntrySize)
	for _, e := range written {
		clear(rec)
		if err := putName(rec[:nameFieldSize], e.name); err != nil {
			return err
		}
		le.PutUint32(rec[nameFieldSize:nameFieldSize+4], e.offset)
		le.PutUint32(rec[nameFieldSize+4:nameFieldSize+8], e.sizeOnDisk)
		le.PutUint32(rec[nameFieldSize+8:nameFieldSize+12], e.uncompressedSize)
		le.PutUint32(rec[nameFieldSize+12:nameFieldSize+16], e.archivePart)
		le.PutUint32(rec[nameFieldSize+16:nameFieldSize+20], uint32(e.flags))
		le.PutUint32(rec[nameFieldSize+20:nameFieldSize+24], 0) // crc, unused
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

	fileListOffset := dataEnd
	var numFilesBuf [4]byte
	le.PutUint32(numFilesBuf[:], uint32(len(written)))
	if _, err := f.Write(numFilesBuf[:]); err != nil {
		return fmt.Errorf("%w: write num_files: %w", ErrIO, err)
	}
	if _, err := f.Write(compressed); err != nil {
		return fmt.Errorf("%w: write directory: %w", ErrIO, err)
	}

	header := make([]byte, v13HeaderSize)
	le.PutUint32(header[0:4], 13)
	le.PutUint32(header[4:8], uint32(fileListOffset))
	le.PutUint32(header[8:12], uint32(4+len(compressed)))
	le.PutUint16(header[12:14], numParts)
	header[14] = 0 // flags
	header[15] = 0                 // priority
	if _, err := f.Write(header); err != nil {
		return fmt.Errorf("%w: write header: %w", ErrIO, err)
	}

	var footerSizeBuf [4]byte
	le.PutUint32(footerSizeBuf[:], uint32(v13HeaderSize+8))
	if _, err := f.Write(footerSizeBuf[:]); err != nil {
		return fmt.Errorf("%w: write footer size: %w", ErrIO, err)
	}

	if _, err := f.Write(signature[:]); err != nil {
		return fmt.Errorf("%w: write signature: %w", ErrIO, err)
	}

	return f.Close()
}
