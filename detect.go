// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// signature is the four-byte ASCII marker identifying the LSPK family.
var signature = [4]byte{'L', 'S', 'P', 'K'}

// Detect classifies a byte stream as a valid archive, a continuation part,
// or invalid, per the documented probe order. pathHint, if non-empty,
// enables continuation resolution by consulting the candidate parent's own
// directory; an empty pathHint means continuation detection is skipped and
// an otherwise-signatureless, non-legacy file is Invalid.
//
// Detect performs at most O(1) I/O against ra, plus one full parse of the
// candidate parent's directory, but only for continuation verification.
func Detect(ra io.ReaderAt, size int64, pathHint string) (DetectionResult, error) {
	if size >= 8 {
		if ok, version, err := probeEndSignature(ra, size); err != nil {
			return DetectionResult{}, err
		} else if ok {
			return DetectionResult{Kind: DetectionOk, Version: version, SignatureLocation: SignatureEnd}, nil
		}
	}

	if size >= 8 {
		if ok, version, err := probeStartSignature(ra); err != nil {
			return DetectionResult{}, err
		} else if ok {
			return DetectionResult{Kind: DetectionOk, Version: version, SignatureLocation: SignatureStart}, nil
		}
	}

	if size >= 4 {
		if ok, version, err := probeLegacyVersion(ra); err != nil {
			return DetectionResult{}, err
		} else if ok {
			return DetectionResult{Kind: DetectionOk, Version: version, SignatureLocation: SignatureNone}, nil
		}
	}

	if pathHint != "" {
		if result, ok, err := probeContinuation(pathHint); err != nil {
			return DetectionResult{}, err
		} else if ok {
			return result, nil
		}
	}

	return DetectionResult{Kind: DetectionInvalid}, nil
}

// probeEndSignature detects a V13 footer signature at the end of the stream.
func probeEndSignature(ra io.ReaderAt, size int64) (ok bool, version int, err error) {
	var tail [4]byte
	if _, err := ra.ReadAt(tail[:], size-4); err != nil {
		return false, 0, fmt.Errorf("%w: read end signature: %w", ErrIO, err)
	}
	if tail != signature {
		return false, 0, nil
	}

	var headerSizeBuf [4]byte
	if _, err := ra.ReadAt(headerSizeBuf[:], size-8); err != nil {
		return false, 0, fmt.Errorf("%w: read footer header size: %w", ErrIO, err)
	}
	headerSize := int64(le.Uint32(headerSizeBuf[:]))
	if headerSize <= 0 || headerSize > size {
		return false, 0, fmt.Errorf("%w: footer header size %d out of range", ErrInvalidSignature, headerSize)
	}

	var versionBuf [4]byte
	if _, err := ra.ReadAt(versionBuf[:], size-headerSize); err != nil {
		return false, 0, fmt.Errorf("%w: read footer version: %w", ErrIO, err)
	}

	return true, int(le.Uint32(versionBuf[:])), nil
}

// probeStartSignature detects a V10/V18-family signature at the start of the stream.
func probeStartSignature(ra io.ReaderAt) (ok bool, version int, err error) {
	var head [8]byte
	if _, err := ra.ReadAt(head[:], 0); err != nil {
		return false, 0, fmt.Errorf("%w: read start signature: %w", ErrIO, err)
	}
	if [4]byte(head[:4]) != signature {
		return false, 0, nil
	}

	return true, int(le.Uint32(head[4:8])), nil
}

// probeLegacyVersion detects a signatureless legacy V7/V9 version field.
func probeLegacyVersion(ra io.ReaderAt) (ok bool, version int, err error) {
	var head [4]byte
	if _, err := ra.ReadAt(head[:], 0); err != nil {
		return false, 0, fmt.Errorf("%w: read legacy version: %w", ErrIO, err)
	}

	v := int(binary.LittleEndian.Uint32(head[:]))
	if v != 7 && v != 9 {
		return false, 0, nil
	}

	return true, v, nil
}

// probeContinuation resolves a "<stem>_<N>.pak" basename to its parent archive
// basename whose resolved parent is itself a valid archive containing a
// directory entry with ArchivePart == N.
func probeContinuation(pathHint string) (DetectionResult, bool, error) {
	dir := filepath.Dir(pathHint)
	base := filepath.Base(pathHint)

	parentBase, part, ok := splitContinuationName(base)
	if !ok {
		return DetectionResult{}, false, nil
	}

	parentPath := filepath.Join(dir, parentBase)
	info, err := os.Stat(parentPath)
	if err != nil || info.IsDir() {
		return DetectionResult{}, false, nil
	}

	pkg, err := Read(parentPath)
	if err != nil {
		return DetectionResult{}, false, nil
	}

	for _, e := range pkg.Files {
		if int(e.ArchivePart) == part {
			return DetectionResult{
				Kind:       DetectionContinuation,
				ParentPath: parentPath,
				PartNumber: part,
			}, true, nil
		}
	}

	return DetectionResult{}, false, nil
}
