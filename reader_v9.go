// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"fmt"
	"io"
)

const (
	v9HeaderSize = 21
	v9EntrySize  = nameFieldSize + 16 // name + offset,size_on_disk,uncompressed_size,archive_part (4x u32)
)

// readV9 parses the signatureless legacy header shared by V7 and V9.
// V7 is treated as untested: its u32 offset-width assumption is
// flagged via Diagnostics but still attempted.
func readV9(ra io.ReaderAt, size int64, path string, version int, diag *Diagnostics) (*Package, error) {
	if size < v9HeaderSize {
		return nil, fmt.Errorf("%w: v%d header", ErrTruncatedHeader, version)
	}

	header := make([]byte, v9HeaderSize)
	if _, err := ra.ReadAt(header, 0); err != nil {
		return nil, fmt.Errorf("%w: read v%d header: %w", ErrIO, version, err)
	}

	numFiles := le.Uint32(header[17:21])

	pkg := &Package{}
	if version == 7 {
		diag.warnUntestedFormat(version, path, "v7 assumed to share v9's u32 offset width")
	}

	directoryOffset := int64(v9HeaderSize)
	directorySize := int64(numFiles) * v9EntrySize
	if directoryOffset+directorySize > size {
		return nil, fmt.Errorf("%w: v%d directory", ErrTruncatedEntry, version)
	}

	raw := make([]byte, directorySize)
	if _, err := readFull(ra, raw, directoryOffset); err != nil {
		return nil, fmt.Errorf("%w: read v%d directory: %w", ErrIO, version, err)
	}

	pkg.Files = make([]FileEntry, numFiles)
	for i := uint32(0); i < numFiles; i++ {
		rec := raw[int(i)*v9EntrySize : int(i+1)*v9EntrySize]
		pkg.Files[i] = FileEntry{
			Name:             getName(rec[:nameFieldSize]),
			Offset:           uint64(le.Uint32(rec[nameFieldSize : nameFieldSize+4])),
			SizeOnDisk:       uint64(le.Uint32(rec[nameFieldSize+4 : nameFieldSize+8])),
			UncompressedSize: uint64(le.Uint32(rec[nameFieldSize+8 : nameFieldSize+12])),
			ArchivePart:      le.Uint32(rec[nameFieldSize+12 : nameFieldSize+16]),
		}
	}

	return pkg, nil
}

// readFull reads exactly len(buf) bytes starting at offset via ReaderAt.
func readFull(ra io.ReaderAt, buf []byte, offset int64) (int, error) {
	return io.ReadFull(io.NewSectionReader(ra, offset, int64(len(buf))), buf)
}
