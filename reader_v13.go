// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"fmt"
	"io"
)

const v13HeaderSize = 32

// readV13 parses a V13 archive: an 8-byte footer trailer naming
// the true header size, a 32-byte footer-anchored header, and an LZ4-
// compressed directory located by file_list_offset/file_list_size.
func readV13(ra io.ReaderAt, size int64) (*Package, error) {
	if size < 8 {
		return nil, fmt.Errorf("%w: v13 footer", ErrTruncatedHeader)
	}

	var headerSizeBuf [4]byte
	if _, err := readFull(ra, headerSizeBuf[:], size-8); err != nil {
		return nil, fmt.Errorf("%w: read v13 footer header size: %w", ErrIO, err)
	}
	headerSize := int64(le.Uint32(headerSizeBuf[:]))
	if headerSize < v13HeaderSize+8 || headerSize > size {
		return nil, fmt.Errorf("%w: v13 footer header size %d", ErrInvalidSignature, headerSize)
	}

	header := make([]byte, v13HeaderSize)
	if _, err := readFull(ra, header, size-headerSize); err != nil {
		return nil, fmt.Errorf("%w: read v13 header: %w", ErrIO, err)
	}

	fileListOffset := int64(le.Uint32(header[4:8]))
	fileListSize := int64(le.Uint32(header[8:12]))
	flags := header[14]

	if fileListOffset < 0 || fileListOffset+fileListSize > size || fileListSize < 4 {
		return nil, fmt.Errorf("%w: v13 directory bounds", ErrTruncatedEntry)
	}

	var numFilesBuf [4]byte
	if _, err := readFull(ra, numFilesBuf[:], fileListOffset); err != nil {
		return nil, fmt.Errorf("%w: read v13 num_files: %w", ErrIO, err)
	}
	numFiles := le.Uint32(numFilesBuf[:])

	compressed := make([]byte, fileListSize-4)
	if _, err := readFull(ra, compressed, fileListOffset+4); err != nil {
		return nil, fmt.Errorf("%w: read v13 compressed directory: %w", ErrIO, err)
	}

	raw, err := lz4Decode(compressed, int(numFiles)*v10EntrySize)
	if err != nil {
		return nil, err
	}

	files := make([]FileEntry, numFiles)
	for i := uint32(0); i < numFiles; i++ {
		rec := raw[int(i)*v10EntrySize : int(i+1)*v10EntrySize]
		files[i] = decodeV10Entry(rec, 0)
	}

	return &Package{Files: files, Flags: flags}, nil
}
