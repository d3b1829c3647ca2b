// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriterV18SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.pak")

	w := NewWriterV18(path)
	if err := w.AddFile("test.txt", []byte("hello world"), false); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if err := w.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	full, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(full[:4], signature[:]) {
		t.Fatal("expected v18 archive to start with the LSPK signature")
	}

	pkg, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if pkg.Version != 18 {
		t.Fatalf("Version = %d, want 18", pkg.Version)
	}
	if len(pkg.Files) != 1 {
		t.Fatalf("len(Files) = %d, want 1", len(pkg.Files))
	}

	entry := pkg.Files[0]
	if entry.Name != "test.txt" {
		t.Fatalf("Name = %q, want %q", entry.Name, "test.txt")
	}
	if entry.UncompressedSize != 0 {
		t.Fatalf("UncompressedSize = %d, want 0 (stored raw sentinel)", entry.UncompressedSize)
	}

	data, err := pkg.Extract(entry)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if string(data) != "hello world" {
		t.Fatalf("Extract() = %q, want %q", data, "hello world")
	}
}

func TestWriterV18CompressedRoundTripPreservesPayload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "compressed.pak")

	original := []byte(strings.Repeat("the quick brown fox\n", 2000))

	w := NewWriterV18(path)
	if err := w.AddFile("log.txt", original, true); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if err := w.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	pkg, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	entry, ok := pkg.Find("log.txt")
	if !ok {
		t.Fatal("missing entry log.txt")
	}
	if !entry.Compressed() {
		t.Fatal("expected the large repetitive payload to compress")
	}

	extracted, err := pkg.Extract(entry)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.Equal(extracted, original) {
		t.Fatal("first extraction does not match original")
	}

	// Re-write the already-extracted payload and verify a second round trip
	// is still byte-identical.
	path2 := filepath.Join(dir, "rewritten.pak")
	w2 := NewWriterV18(path2)
	if err := w2.AddFile("log.txt", extracted, true); err != nil {
		t.Fatalf("AddFile (rewrite): %v", err)
	}
	if err := w2.Save(); err != nil {
		t.Fatalf("Save (rewrite): %v", err)
	}

	pkg2, err := Read(path2)
	if err != nil {
		t.Fatalf("Read (rewrite): %v", err)
	}
	entry2, ok := pkg2.Find("log.txt")
	if !ok {
		t.Fatal("missing entry log.txt in rewrite")
	}
	reExtracted, err := pkg2.Extract(entry2)
	if err != nil {
		t.Fatalf("Extract (rewrite): %v", err)
	}
	if !bytes.Equal(reExtracted, original) {
		t.Fatal("re-written archive's extraction is not byte-identical to original")
	}
}

func TestWriterV18EmptyFileSkipsCodec(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pak")

	w := NewWriterV18(path)
	if err := w.AddFile("empty.txt", nil, true); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if err := w.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	pkg, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	entry, ok := pkg.Find("empty.txt")
	if !ok {
		t.Fatal("missing entry empty.txt")
	}
	if !entry.Empty() {
		t.Fatal("expected Empty() true for a zero-byte payload")
	}

	data, err := pkg.Extract(entry)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("Extract() = %d bytes, want 0", len(data))
	}
}
