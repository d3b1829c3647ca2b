// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"fmt"

	"github.com/woozymasta/pathrules"
)

// CompressPolicy is an optional, glob-rule-driven helper for deciding the
// per-file compress flag ahead of a batch Writer.AddFile call. It never
// replaces the explicit boolean the writers take: it is a
// convenience for computing that boolean from a caller-supplied rule set.
type CompressPolicy struct {
	matcher           *pathrules.Matcher
	minSize, maxSize  uint64
}

// NewCompressPolicy compiles an ordered set of include/exclude glob rules
// plus a size band. A nil/empty rule set yields a policy whose
// ShouldCompress always reports false, mirroring the common
// "empty rule set means no compression" convention.
func NewCompressPolicy(rules []pathrules.Rule, opts pathrules.MatcherOptions, minSize, maxSize uint64) (*CompressPolicy, error) {
	if len(rules) == 0 {
		return &CompressPolicy{minSize: minSize, maxSize: maxSize}, nil
	}

	matcher, err := pathrules.NewMatcher(rules, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCompressPattern, err)
	}

	return &CompressPolicy{matcher: matcher, minSize: minSize, maxSize: maxSize}, nil
}

// ShouldCompress reports whether name and size pass the compiled rule set
// and size band. It is a pure function: it never mutates the policy, the
// writer, or touches disk.
func (cp *CompressPolicy) ShouldCompress(name string, size uint64) bool {
	if cp == nil || cp.matcher == nil {
		return false
	}
	if cp.maxSize != 0 && size > cp.maxSize {
		return false
	}
	if size < cp.minSize {
		return false
	}

	return cp.matcher.Included(NormalizeEntryPath(name), false)
}
