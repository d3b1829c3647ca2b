// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"os"
	"testing"
)

func TestReadV9StoredRawInference(t *testing.T) {
	dir := t.TempDir()
	path := writeV9Archive(t, dir, []testFile{
		{name: "raw.txt", data: []byte("hello world")},
	})

	pkg, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if pkg.Version != 9 {
		t.Fatalf("Version = %d, want 9", pkg.Version)
	}
	if len(pkg.Files) != 1 {
		t.Fatalf("len(Files) = %d, want 1", len(pkg.Files))
	}

	entry, ok := pkg.Find("raw.txt")
	if !ok {
		t.Fatal("expected to find raw.txt")
	}
	if entry.Compressed() {
		t.Fatal("expected Compressed() false: uncompressed_size sentinel is zero")
	}

	data, err := pkg.Extract(entry)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if string(data) != "hello world" {
		t.Fatalf("Extract() = %q, want %q", data, "hello world")
	}
}

func TestReadV7EmitsUntestedFormatWarning(t *testing.T) {
	dir := t.TempDir()
	path := writeLegacyArchive(t, dir, 7, []testFile{
		{name: "a.txt", data: []byte("abc")},
	})

	pkg, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if pkg.Version != 7 {
		t.Fatalf("Version = %d, want 7", pkg.Version)
	}

	warnings := pkg.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("len(Warnings()) = %d, want 1; warnings = %v", len(warnings), warnings)
	}
}

func TestReadV9TruncatedHeaderErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeV9Archive(t, dir, nil)

	full, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	truncated := full[:v9HeaderSize-1]
	truncPath := path + ".trunc"
	if err := os.WriteFile(truncPath, truncated, 0o600); err != nil {
		t.Fatalf("write truncated: %v", err)
	}

	if _, err := Read(truncPath); err == nil {
		t.Fatal("expected error reading truncated v9 header")
	}
}
