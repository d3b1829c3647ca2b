// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

// FlagLZ4 marks an entry's payload as LZ4 block-compressed on disk.
// It is the only bit defined in FileEntry.Flags.
const FlagLZ4 = 0x02

// FileEntry is one archived file's directory record, normalised to a
// uniform in-memory shape regardless of which on-disk version produced it.
type FileEntry struct {
	// Name is the archive-internal path, forward-slash separated.
	Name string
	// Offset is the 0-based byte position of the payload within ArchivePart.
	Offset uint64
	// SizeOnDisk is the number of payload bytes physically stored.
	SizeOnDisk uint64
	// UncompressedSize is the original payload length; zero means "stored raw".
	// Do not read this as "the file is empty"; see Compressed and Empty.
	UncompressedSize uint64
	// ArchivePart is the zero-based continuation part holding the payload.
	// 0 selects the main archive file.
	ArchivePart uint32
	// Flags carries the on-disk flag byte when the format version has one.
	// hasFlags distinguishes "flags byte absent" (legacy V9/V7) from "flags == 0".
	Flags    uint8
	hasFlags bool
}

// Compressed reports whether this entry's payload is LZ4 block-compressed.
// When the on-disk format carries a flags byte, bit FlagLZ4 is authoritative.
// For legacy formats with no flags byte, compression is inferred from the
// uncompressed/stored size mismatch convention legacy archives use.
func (e FileEntry) Compressed() bool {
	if e.hasFlags {
		return e.Flags&FlagLZ4 != 0
	}

	return e.UncompressedSize != 0 && e.UncompressedSize != e.SizeOnDisk
}

// Empty reports whether the entry's payload is zero bytes on disk. Empty
// files extract to zero bytes without ever invoking the LZ4 codec.
func (e FileEntry) Empty() bool {
	return e.SizeOnDisk == 0
}

// withFlags returns a copy of e carrying an explicit flags byte.
func (e FileEntry) withFlags(flags uint8) FileEntry {
	e.Flags = flags
	e.hasFlags = true
	return e
}
