// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

/*
Package lspk reads and writes LSPK archives, the proprietary asset-bundle
format used across versions 7, 9, 10, 13, 15/16, and 18 of a family of
role-playing-game titles. An archive bundles thousands of named, optionally
LZ4-compressed files and may be split across several "<base>_N.pak"
continuation parts.

# Reading

Open an archive by path; the on-disk version is detected from the bytes
alone, so no version hint is required:

	pkg, err := lspk.Read("Assets.pak")
	if err != nil {
	    return err
	}
	for _, e := range pkg.Files {
	    data, err := pkg.Extract(e)
	    if err != nil {
	        return err
	    }
	    _ = data
	}

Look up a single entry by name:

	data, err := pkg.ExtractByName("Story/RootTemplates/_merged.lsf")

Extract everything to a directory, bounded by a worker pool:

	if err := pkg.ExtractAll(ctx, "out/"); err != nil {
	    return err
	}

Untested-format conditions (V7, V15, V16) are collected rather than
surfaced as errors:

	for _, w := range pkg.Warnings() {
	    log.Println(w)
	}

To route those warnings through a specific logger instead of the package
default, parse with ReadWithDiagnostics:

	diag := lspk.NewDiagnostics(myLogger)
	pkg, err := lspk.ReadWithDiagnostics("Old.pak", diag)

# Writing

Each writable version has its own writer, matching the asymmetry of the
format: V10 never compresses, V13 can split across parts, V18 is always
single-part.

	w := lspk.NewWriterV18("out.pak")
	if err := w.AddFile("meta.lsx", data, true); err != nil {
	    return err
	}
	if err := w.Save(); err != nil {
	    return err
	}

A V13 archive with a part size limit:

	w := lspk.NewWriterV13("out.pak", 64<<20)
	_ = w.AddFile("big.bin", payload, true)
	_ = w.Save()
	// produces out.pak, out_1.pak, ... as needed

CompressPolicy turns a glob rule set into the per-file boolean the writers
expect, for callers batching many files by pattern:

	policy, err := lspk.NewCompressPolicy(rules, opts, 0, 0)
	if err != nil {
	    return err
	}
	_ = w.AddFile(name, data, policy.ShouldCompress(name, uint64(len(data))))
*/
package lspk
