// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

// SignatureLocation records where (if anywhere) the "LSPK" marker appears
// in an archive's bytes.
type SignatureLocation int

const (
	// SignatureNone means no "LSPK" marker is present (legacy V7/V9).
	SignatureNone SignatureLocation = iota
	// SignatureStart means the marker is the first four bytes (V10/V18-family).
	SignatureStart
	// SignatureEnd means the marker is the last four bytes (V13).
	SignatureEnd
)

// DetectionKind is the tag of a DetectionResult sum type.
type DetectionKind int

const (
	// DetectionInvalid means the bytes do not resemble any known LSPK variant.
	DetectionInvalid DetectionKind = iota
	// DetectionOk means a valid, directly-openable archive was recognised.
	DetectionOk
	// DetectionContinuation means the bytes are a continuation part and the
	// caller should open ParentPath instead.
	DetectionContinuation
)

// DetectionResult is the outcome of Detect: a tagged sum of
// Ok{Version, SignatureLocation} | Continuation{ParentPath, PartNumber} | Invalid.
type DetectionResult struct {
	Kind DetectionKind

	// Version and SignatureLocation are set when Kind == DetectionOk.
	Version           int
	SignatureLocation SignatureLocation

	// ParentPath and PartNumber are set when Kind == DetectionContinuation.
	ParentPath string
	PartNumber int
}

// PartLocation places a probed file within its archive: PartNumber 0 means
// Path is the probed file itself, the main (or only) part; a non-zero
// PartNumber means the probed file is that continuation part and Path is
// the parent archive that must be opened to make sense of it.
type PartLocation struct {
	Path       string
	PartNumber int
}

// Package is the in-memory directory produced by Read. It owns the parsed
// entry list but not the file contents: payloads are re-read from disk on
// every Extract call.
type Package struct {
	// Version is the on-disk format version this archive was parsed as.
	Version int
	// Files preserves on-disk directory order.
	Files []FileEntry
	// Path is the filesystem path of the main (part 0) archive file.
	Path string
	// Flags carries header-level flags verbatim for round-trip purposes;
	// their bit semantics are opaque to this library.
	Flags uint8

	warnings []string
}

// Warnings returns the non-fatal diagnostics collected while parsing this
// archive, in emission order. An empty slice means no untested-format
// conditions were observed.
func (p *Package) Warnings() []string {
	if p == nil {
		return nil
	}
	return p.warnings
}

// Find returns the directory entry named name, if present. Lookup is a
// linear scan: directories are small enough in practice that
// an index is not worth the bookkeeping.
func (p *Package) Find(name string) (FileEntry, bool) {
	if p == nil {
		return FileEntry{}, false
	}

	for _, e := range p.Files {
		if e.Name == name {
			return e, true
		}
	}

	return FileEntry{}, false
}
