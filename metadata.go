// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"fmt"
	"io"
	"os"
)

// ReadHeaders opens path and probes its version and part location without
// parsing the file directory. It is the fast path for a caller that only
// needs to know what an archive is before deciding whether to fully Read it.
func ReadHeaders(path string) (version int, part PartLocation, warnings []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, PartLocation{}, nil, fmt.Errorf("%w: open %q: %w", ErrIO, path, err)
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return 0, PartLocation{}, nil, fmt.Errorf("%w: stat %q: %w", ErrIO, path, err)
	}

	return ReadHeadersFromReaderAt(f, fi.Size(), path)
}

// ReadHeadersFromReaderAt is ReadHeaders against an already-open random-access
// source; pathHint enables continuation detection, is returned as Path for a
// main archive, and appears in warning text.
func ReadHeadersFromReaderAt(ra io.ReaderAt, size int64, pathHint string) (version int, part PartLocation, warnings []string, err error) {
	result, err := Detect(ra, size, pathHint)
	if err != nil {
		return 0, PartLocation{}, nil, err
	}

	switch result.Kind {
	case DetectionContinuation:
		return 0, PartLocation{Path: result.ParentPath, PartNumber: result.PartNumber}, nil, nil
	case DetectionInvalid:
		return 0, PartLocation{}, nil, ErrInvalidSignature
	}

	diag := NewDiagnostics(nil)
	if result.Version == 7 || result.Version == 15 || result.Version == 16 {
		diag.warnUntestedFormat(result.Version, pathHint, "untested format identified by ReadHeaders without a directory parse")
	}

	return result.Version, PartLocation{Path: pathHint, PartNumber: 0}, diag.snapshot(), nil
}
