// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ExtractByName resolves name to a directory entry and extracts its payload.
// It returns ErrFileNotFound if no entry matches.
func (p *Package) ExtractByName(name string) ([]byte, error) {
	entry, ok := p.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFileNotFound, name)
	}

	return p.Extract(entry)
}

// Extract decodes entry's payload, re-opening the owning part file on every
// call. Extraction is re-entrant: concurrent calls against the same
// Package are safe as long as the underlying filesystem supports concurrent
// positional reads.
func (p *Package) Extract(entry FileEntry) ([]byte, error) {
	if entry.Empty() {
		return nil, nil
	}

	partFile := partPath(p.Path, entry.ArchivePart)
	f, err := os.Open(partFile)
	if err != nil {
		return nil, fmt.Errorf("%w: open part %d (%s): %w", ErrIO, entry.ArchivePart, partFile, err)
	}
	defer func() { _ = f.Close() }()

	raw := make([]byte, entry.SizeOnDisk)
	if _, err := io.ReadFull(io.NewSectionReader(f, int64(entry.Offset), int64(entry.SizeOnDisk)), raw); err != nil {
		return nil, fmt.Errorf("%w: read payload for %q: %w", ErrIO, entry.Name, err)
	}

	if !entry.Compressed() {
		return raw, nil
	}

	decoded, err := lz4Decode(raw, int(entry.UncompressedSize))
	if err != nil {
		return nil, fmt.Errorf("lspk: decompress %q: %w", entry.Name, err)
	}

	return decoded, nil
}

// extractAllWorkers bounds ExtractAll's concurrency the same way the
// teacher library bounds its own batch-extraction worker pool, but built on
// golang.org/x/sync/errgroup instead of a hand-rolled WaitGroup/channel pair.
func extractAllWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}

// ExtractAll decodes every directory entry and writes it under dstDir,
// creating parent directories as needed. Extraction of distinct entries is
// parallelized with a bounded worker group; the first error encountered
// cancels the remaining work and is returned.
func (p *Package) ExtractAll(ctx context.Context, dstDir string) error {
	if p == nil {
		return nil
	}

	if err := os.MkdirAll(dstDir, 0o750); err != nil {
		return fmt.Errorf("%w: create output dir: %w", ErrIO, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(extractAllWorkers())

	for _, entry := range p.Files {
		entry := entry
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return p.extractOneTo(dstDir, entry)
		})
	}

	return g.Wait()
}

// extractOneTo decodes one entry and writes it to its path under dstDir,
// rejecting names that would escape dstDir.
func (p *Package) extractOneTo(dstDir string, entry FileEntry) error {
	rel := filepath.FromSlash(strings.TrimPrefix(entry.Name, "/"))
	dest := filepath.Join(dstDir, rel)

	destAbs, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("%w: resolve %q: %w", ErrIO, entry.Name, err)
	}
	dstDirAbs, err := filepath.Abs(dstDir)
	if err != nil {
		return fmt.Errorf("%w: resolve output dir: %w", ErrIO, err)
	}
	if destAbs != dstDirAbs && !strings.HasPrefix(destAbs, dstDirAbs+string(filepath.Separator)) {
		return fmt.Errorf("lspk: extract path %q escapes destination root", entry.Name)
	}

	if err := os.MkdirAll(filepath.Dir(destAbs), 0o750); err != nil {
		return fmt.Errorf("%w: create dir for %q: %w", ErrIO, entry.Name, err)
	}

	data, err := p.Extract(entry)
	if err != nil {
		return err
	}

	if err := os.WriteFile(destAbs, data, 0o600); err != nil {
		return fmt.Errorf("%w: write %q: %w", ErrIO, entry.Name, err)
	}

	return nil
}
