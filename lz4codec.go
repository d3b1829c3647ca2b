// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// lz4Decode decodes a single LZ4 block. The caller must know the exact
// decompressed size in advance; LSPK directories and payloads always carry
// it alongside the compressed bytes, so there is no framed/streamed form to
// fall back to.
func lz4Decode(src []byte, expectedSize int) ([]byte, error) {
	if expectedSize == 0 {
		return nil, nil
	}

	dst := make([]byte, expectedSize)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompressionFailed, err)
	}
	if n != expectedSize {
		return nil, fmt.Errorf("%w: decoded %d bytes, want %d", ErrCompressionFailed, n, expectedSize)
	}

	return dst, nil
}

// lz4Encode compresses src as a single LZ4 block and returns the compressed
// bytes. The returned slice is sized to the actual compressed length, never
// to the worst-case bound.
func lz4Encode(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	var compressor lz4.Compressor
	n, err := compressor.CompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("lspk: lz4 encode: %w", err)
	}
	if n == 0 || n >= len(src) {
		// Incompressible input: the block is no smaller than the source
		// (CompressBlock may also report n == 0). Callers decide whether
		// to fall back to storing the payload raw.
		return nil, errIncompressible
	}

	return dst[:n], nil
}

// errIncompressible signals that lz4Encode could not shrink the input; it is
// an internal control-flow value, never returned to API callers.
var errIncompressible = fmt.Errorf("lspk: incompressible")
