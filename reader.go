// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"fmt"
	"io"
	"os"
)

// Read opens path and parses its header and directory, dispatching to the
// correct versioned reader. If path names a continuation part directly, the
// returned error wraps ErrContinuationOpenedDirectly and names the resolved
// parent and part number so the caller can redirect.
func Read(path string) (*Package, error) {
	return ReadWithDiagnostics(path, nil)
}

// ReadWithDiagnostics is Read with an explicit *Diagnostics collector; pass
// nil to use the package-level default logger.
func ReadWithDiagnostics(path string, diag *Diagnostics) (*Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open archive: %w", ErrIO, err)
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat archive: %w", ErrIO, err)
	}

	return readFromReaderAt(f, fi.Size(), path, diag)
}

// readFromReaderAt runs Detect against ra and dispatches to the matching
// versioned reader implementation.
func readFromReaderAt(ra io.ReaderAt, size int64, path string, diag *Diagnostics) (*Package, error) {
	result, err := Detect(ra, size, path)
	if err != nil {
		return nil, err
	}

	switch result.Kind {
	case DetectionContinuation:
		return nil, fmt.Errorf("%w: parent %q part %d", ErrContinuationOpenedDirectly, result.ParentPath, result.PartNumber)
	case DetectionInvalid:
		return nil, ErrInvalidSignature
	}

	if diag == nil {
		diag = NewDiagnostics(nil)
	}

	pkg, err := dispatchReader(result.Version, ra, size, path, diag)
	if err != nil {
		return nil, err
	}

	pkg.Path = path
	pkg.Version = result.Version
	pkg.warnings = diag.snapshot()
	return pkg, nil
}

// dispatchReader maps a detected version to the reader implementation that
// parses it.
func dispatchReader(version int, ra io.ReaderAt, size int64, path string, diag *Diagnostics) (*Package, error) {
	switch version {
	case 7, 9:
		return readV9(ra, size, path, version, diag)
	case 10:
		return readV10(ra, size)
	case 13:
		return readV13(ra, size)
	case 15, 16, 18:
		return readV18Family(ra, size, path, version, diag)
	default:
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, version)
	}
}
