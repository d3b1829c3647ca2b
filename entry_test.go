// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import "testing"

func TestFileEntryCompressedWithFlags(t *testing.T) {
	e := FileEntry{SizeOnDisk: 10, UncompressedSize: 40}.withFlags(FlagLZ4)
	if !e.Compressed() {
		t.Fatal("expected Compressed() true when FlagLZ4 set")
	}

	e2 := FileEntry{SizeOnDisk: 10, UncompressedSize: 0}.withFlags(0)
	if e2.Compressed() {
		t.Fatal("expected Compressed() false when flags byte is zero, even with legacy-like sizes")
	}
}

func TestFileEntryCompressedLegacyInference(t *testing.T) {
	compressed := FileEntry{SizeOnDisk: 10, UncompressedSize: 40}
	if !compressed.Compressed() {
		t.Fatal("expected Compressed() true: uncompressed_size > 0 and != size_on_disk")
	}

	storedRaw := FileEntry{SizeOnDisk: 40, UncompressedSize: 0}
	if storedRaw.Compressed() {
		t.Fatal("expected Compressed() false: uncompressed_size sentinel zero means stored raw")
	}

	equalSizes := FileEntry{SizeOnDisk: 40, UncompressedSize: 40}
	if equalSizes.Compressed() {
		t.Fatal("expected Compressed() false: uncompressed_size == size_on_disk means stored raw")
	}
}

func TestFileEntryEmpty(t *testing.T) {
	if !(FileEntry{SizeOnDisk: 0}).Empty() {
		t.Fatal("expected Empty() true for zero size_on_disk")
	}
	if (FileEntry{SizeOnDisk: 1}).Empty() {
		t.Fatal("expected Empty() false for non-zero size_on_disk")
	}
}
