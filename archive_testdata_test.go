// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"os"
	"path/filepath"
	"testing"
)

// testFile describes one payload to embed in a hand-built archive.
type testFile struct {
	name    string
	data    []byte
	compress bool
}

// writeV9Archive hand-assembles a minimal signatureless V9 archive and
// returns its path. Entries are stored raw; no flags byte exists for V9.
func writeV9Archive(t *testing.T, dir string, files []testFile) string {
	t.Helper()
	return writeLegacyArchive(t, dir, 9, files)
}

// writeLegacyArchive builds a signatureless V7/V9-layout archive tagged
// with an explicit version field, for exercising the shared V9 reader path.
func writeLegacyArchive(t *testing.T, dir string, version uint32, files []testFile) string {
	t.Helper()

	path := filepath.Join(dir, "legacy.pak")
	numFiles := uint32(len(files))

	header := make([]byte, v9HeaderSize)
	le.PutUint32(header[0:4], version)
	le.PutUint32(header[4:8], 0) // data_offset, unused by this reader
	le.PutUint32(header[8:12], 1)
	le.PutUint32(header[12:16], numFiles*v9EntrySize)
	header[16] = 1 // little_endian
	le.PutUint32(header[17:21], numFiles)

	offset := uint32(v9HeaderSize) + numFiles*v9EntrySize
	dir32 := make([]byte, 0, int(numFiles)*v9EntrySize)
	var payloads []byte
	for _, f := range files {
		rec := make([]byte, v9EntrySize)
		if err := putName(rec[:nameFieldSize], f.name); err != nil {
			t.Fatalf("putName: %v", err)
		}
		le.PutUint32(rec[nameFieldSize:nameFieldSize+4], offset)
		le.PutUint32(rec[nameFieldSize+4:nameFieldSize+8], uint32(len(f.data)))
		le.PutUint32(rec[nameFieldSize+8:nameFieldSize+12], 0)
		le.PutUint32(rec[nameFieldSize+12:nameFieldSize+16], 0)
		dir32 = append(dir32, rec...)
		payloads = append(payloads, f.data...)
		offset += uint32(len(f.data))
	}

	var buf []byte
	buf = append(buf, header...)
	buf = append(buf, dir32...)
	buf = append(buf, payloads...)

	if err := os.WriteFile(path, buf, 0o600); err != nil {
		t.Fatalf("write %q: %v", path, err)
	}
	return path
}

// mustOpenAt opens path for the duration of the calling test and closes it
// on cleanup, returning the handle for use as an io.ReaderAt.
func mustOpenAt(t *testing.T, path string) *os.File {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %q: %v", path, err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

// mustSize returns path's size in bytes.
func mustSize(t *testing.T, path string) int64 {
	t.Helper()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %q: %v", path, err)
	}
	return info.Size()
}

// writeV1516Archive hand-assembles a minimal V15/V16-layout archive (the
// 296-byte entry variant of the V18-family reader), since this library
// never writes these versions.
func writeV1516Archive(t *testing.T, dir string, version uint32, files []testFile) string {
	t.Helper()

	path := filepath.Join(dir, "legacy-wide.pak")
	numFiles := uint32(len(files))

	payloadStart := int64(v18HeaderOffset) + v18HeaderSize
	var payloads []byte
	type placed struct {
		name   string
		offset int64
		size   int
	}
	entries := make([]placed, 0, numFiles)
	offset := payloadStart
	for _, f := range files {
		entries = append(entries, placed{name: f.name, offset: offset, size: len(f.data)})
		payloads = append(payloads, f.data...)
		offset += int64(len(f.data))
	}

	dirBlock := make([]byte, 0, int(numFiles)*v1516EntrySize)
	for _, e := range entries {
		rec := make([]byte, v1516EntrySize)
		if err := putName(rec[:nameFieldSize], e.name); err != nil {
			t.Fatalf("putName: %v", err)
		}
		le.PutUint64(rec[nameFieldSize:nameFieldSize+8], uint64(e.offset))
		le.PutUint64(rec[nameFieldSize+8:nameFieldSize+16], uint64(e.size))
		le.PutUint64(rec[nameFieldSize+16:nameFieldSize+24], 0) // uncompressed_size sentinel: stored raw
		le.PutUint32(rec[nameFieldSize+24:nameFieldSize+28], 0) // archive_part
		le.PutUint32(rec[nameFieldSize+28:nameFieldSize+32], 0) // flags
		le.PutUint32(rec[nameFieldSize+32:nameFieldSize+36], 0) // crc
		le.PutUint32(rec[nameFieldSize+36:nameFieldSize+40], 0) // unknown
		dirBlock = append(dirBlock, rec...)
	}

	compressed, err := lz4Encode(dirBlock)
	if err != nil {
		if err == errIncompressible {
			compressed = dirBlock
		} else {
			t.Fatalf("lz4Encode directory: %v", err)
		}
	}

	fileListOffset := offset

	header := make([]byte, v18HeaderSize)
	le.PutUint32(header[0:4], version)
	le.PutUint64(header[4:12], uint64(fileListOffset))
	le.PutUint32(header[12:16], uint32(8+len(compressed)))
	header[16] = 0 // flags
	header[17] = 0 // priority
	le.PutUint16(header[34:36], 1)

	var buf []byte
	buf = append(buf, signature[:]...)
	buf = append(buf, header...)
	buf = append(buf, payloads...)

	var dirHead [8]byte
	le.PutUint32(dirHead[0:4], numFiles)
	le.PutUint32(dirHead[4:8], uint32(len(compressed)))
	buf = append(buf, dirHead[:]...)
	buf = append(buf, compressed...)

	if err := os.WriteFile(path, buf, 0o600); err != nil {
		t.Fatalf("write %q: %v", path, err)
	}
	return path
}
