// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"fmt"
	"io"
)

const (
	v18HeaderOffset = 4 // after the 4-byte "LSPK" signature
	v18HeaderSize   = 36
	v18EntrySize    = nameFieldSize + 16 // name + offset_lo(u32),offset_hi(u16),archive_part(u8),flags(u8),size_on_disk(u32),uncompressed_size(u32)
	v1516EntrySize  = nameFieldSize + 40 // name + offset,size_on_disk,uncompressed_size(3x u64) + archive_part,flags,crc,unknown(4x u32)
)

// readV18Family parses the V18-family layout shared by V15, V16, and V18:
// a 36-byte header, then a directory block of
// num_files:u32, compressed_size:u32, LZ4(entries). V15/V16 share this
// reader path but use the wider 296-byte entry layout and are flagged as
// untested via Diagnostics; no known production archive uses them.
func readV18Family(ra io.ReaderAt, size int64, path string, version int, diag *Diagnostics) (*Package, error) {
	if size < v18HeaderOffset+v18HeaderSize {
		return nil, fmt.Errorf("%w: v%d header", ErrTruncatedHeader, version)
	}

	header := make([]byte, v18HeaderSize)
	if _, err := readFull(ra, header, v18HeaderOffset); err != nil {
		return nil, fmt.Errorf("%w: read v%d header: %w", ErrIO, version, err)
	}

	fileListOffset := int64(le.Uint64(header[4:12]))
	flags := header[16]

	if version == 15 || version == 16 {
		diag.warnUntestedFormat(version, path, "v15/v16 share the v18 reader path with 296-byte entries; no known production archive uses them")
	}

	if fileListOffset < 0 || fileListOffset+8 > size {
		return nil, fmt.Errorf("%w: v%d directory offset", ErrTruncatedEntry, version)
	}

	dirHead := make([]byte, 8)
	if _, err := readFull(ra, dirHead, fileListOffset); err != nil {
		return nil, fmt.Errorf("%w: read v%d directory head: %w", ErrIO, version, err)
	}
	numFiles := le.Uint32(dirHead[0:4])
	compressedSize := le.Uint32(dirHead[4:8])

	compressedOffset := fileListOffset + 8
	if compressedOffset+int64(compressedSize) > size {
		return nil, fmt.Errorf("%w: v%d compressed directory", ErrTruncatedEntry, version)
	}

	compressed := make([]byte, compressedSize)
	if _, err := readFull(ra, compressed, compressedOffset); err != nil {
		return nil, fmt.Errorf("%w: read v%d compressed directory: %w", ErrIO, version, err)
	}

	entrySize := v18EntrySize
	if version == 15 || version == 16 {
		entrySize = v1516EntrySize
	}

	raw, err := lz4Decode(compressed, int(numFiles)*entrySize)
	if err != nil {
		return nil, err
	}

	files := make([]FileEntry, numFiles)
	for i := uint32(0); i < numFiles; i++ {
		rec := raw[int(i)*entrySize : int(i+1)*entrySize]
		if version == 15 || version == 16 {
			files[i] = decodeV1516Entry(rec)
		} else {
			files[i] = decodeV18Entry(rec)
		}
	}

	return &Package{Files: files, Flags: flags}, nil
}

// decodeV18Entry decodes one 272-byte V18 directory record with its 48-bit
// split offset.
func decodeV18Entry(rec []byte) FileEntry {
	lo := le.Uint32(rec[nameFieldSize : nameFieldSize+4])
	hi := le.Uint16(rec[nameFieldSize+4 : nameFieldSize+6])
	archivePart := rec[nameFieldSize+6]
	flags := rec[nameFieldSize+7]

	return FileEntry{
		Name:             getName(rec[:nameFieldSize]),
		Offset:           joinOffset48(lo, hi),
		ArchivePart:      uint32(archivePart),
		SizeOnDisk:       uint64(le.Uint32(rec[nameFieldSize+8 : nameFieldSize+12])),
		UncompressedSize: uint64(le.Uint32(rec[nameFieldSize+12 : nameFieldSize+16])),
	}.withFlags(flags)
}

// decodeV1516Entry decodes one 296-byte V15/V16 directory record.
func decodeV1516Entry(rec []byte) FileEntry {
	archivePart := le.Uint32(rec[nameFieldSize+24 : nameFieldSize+28])
	entryFlags := le.Uint32(rec[nameFieldSize+28 : nameFieldSize+32])

	return FileEntry{
		Name:             getName(rec[:nameFieldSize]),
		Offset:           le.Uint64(rec[nameFieldSize : nameFieldSize+8]),
		SizeOnDisk:       le.Uint64(rec[nameFieldSize+8 : nameFieldSize+16]),
		UncompressedSize: le.Uint64(rec[nameFieldSize+16 : nameFieldSize+24]),
		ArchivePart:      archivePart,
	}.withFlags(uint8(entryFlags))
}
