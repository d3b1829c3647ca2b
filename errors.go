// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import "errors"

// Sentinel errors for LSPK operations. Use errors.Is in callers.
var (
	// ErrInvalidSignature means no recognisable LSPK header/footer was found.
	ErrInvalidSignature = errors.New("lspk: invalid signature")
	// ErrUnsupportedVersion means the version field parsed but no reader/writer exists for it.
	ErrUnsupportedVersion = errors.New("lspk: unsupported version")
	// ErrTruncatedHeader means the stream ended before a fixed-size header could be read.
	ErrTruncatedHeader = errors.New("lspk: truncated header")
	// ErrTruncatedEntry means the stream ended before a directory entry could be read.
	ErrTruncatedEntry = errors.New("lspk: truncated entry")
	// ErrCompressionFailed means an LZ4 block decode did not produce the expected size.
	ErrCompressionFailed = errors.New("lspk: compression failed")
	// ErrFileNotFound means the requested entry name is not present in the directory.
	ErrFileNotFound = errors.New("lspk: file not found")
	// ErrIO wraps an underlying read/write/seek failure.
	ErrIO = errors.New("lspk: io failure")
	// ErrContinuationOpenedDirectly means a continuation part file was opened as if it
	// were a main archive; the caller must redirect to the resolved parent.
	ErrContinuationOpenedDirectly = errors.New("lspk: file is a continuation part, open the parent archive instead")
	// ErrNameTooLong means an entry name exceeds the 255-byte on-disk name budget.
	ErrNameTooLong = errors.New("lspk: entry name exceeds 255 bytes")
	// ErrNilWriter means Save was called on a nil *WriterV10, *WriterV13 or *WriterV18.
	ErrNilWriter = errors.New("lspk: writer is nil")
	// ErrClosed means the reader or writer has already been closed/saved.
	ErrClosed = errors.New("lspk: already closed")
	// ErrInvalidCompressPattern means a compress-policy glob rule failed to compile.
	ErrInvalidCompressPattern = errors.New("lspk: invalid compress rule pattern")
)
