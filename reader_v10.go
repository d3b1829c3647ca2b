// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"fmt"
	"io"
)

const (
	v10HeaderOffset = 4 // after the 4-byte "LSPK" signature
	v10HeaderSize   = 20
	v10EntrySize    = nameFieldSize + 24 // name + offset,size_on_disk,uncompressed_size,archive_part,flags,crc (6x u32)
)

// readV10 parses a V10 archive: signature, 20-byte header,
// uncompressed directory, entries whose offsets are relative to the
// header's data_offset field.
func readV10(ra io.ReaderAt, size int64) (*Package, error) {
	if size < v10HeaderOffset+v10HeaderSize {
		return nil, fmt.Errorf("%w: v10 header", ErrTruncatedHeader)
	}

	header := make([]byte, v10HeaderSize)
	if _, err := readFull(ra, header, v10HeaderOffset); err != nil {
		return nil, fmt.Errorf("%w: read v10 header: %w", ErrIO, err)
	}

	dataOffset := int64(le.Uint32(header[4:8]))
	numFiles := le.Uint32(header[16:20])
	flags := header[14]

	directoryOffset := int64(v10HeaderOffset + v10HeaderSize)
	directorySize := int64(numFiles) * v10EntrySize
	if directoryOffset+directorySize > size {
		return nil, fmt.Errorf("%w: v10 directory", ErrTruncatedEntry)
	}

	raw := make([]byte, directorySize)
	if _, err := readFull(ra, raw, directoryOffset); err != nil {
		return nil, fmt.Errorf("%w: read v10 directory: %w", ErrIO, err)
	}

	files := make([]FileEntry, numFiles)
	for i := uint32(0); i < numFiles; i++ {
		rec := raw[int(i)*v10EntrySize : int(i+1)*v10EntrySize]
		files[i] = decodeV10Entry(rec, dataOffset)
	}

	return &Package{Files: files, Flags: flags}, nil
}

// decodeV10Entry decodes one 280-byte V10/V13-layout directory record.
// dataOffset is added to the stored offset: the header's data_offset for
// V10, whose offsets are relative, and 0 for V13, whose offsets are absolute.
func decodeV10Entry(rec []byte, dataOffset int64) FileEntry {
	offset := uint64(int64(le.Uint32(rec[nameFieldSize:nameFieldSize+4])) + dataOffset)
	entryFlags := le.Uint32(rec[nameFieldSize+16 : nameFieldSize+20])

	return FileEntry{
		Name:             getName(rec[:nameFieldSize]),
		Offset:           offset,
		SizeOnDisk:       uint64(le.Uint32(rec[nameFieldSize+4 : nameFieldSize+8])),
		UncompressedSize: uint64(le.Uint32(rec[nameFieldSize+8 : nameFieldSize+12])),
		ArchivePart:      le.Uint32(rec[nameFieldSize+12 : nameFieldSize+16]),
	}.withFlags(uint8(entryFlags))
}
