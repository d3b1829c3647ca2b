// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// continuationNamePattern matches "<base>_<N>.pak" basenames, case-insensitively.
var continuationNamePattern = regexp.MustCompile(`(?i)^(.+)_(\d+)\.pak$`)

// partPath returns the filesystem path of continuation part number part,
// colocated with basePath. Part 0 is basePath itself.
func partPath(basePath string, part uint32) string {
	if part == 0 {
		return basePath
	}

	dir := filepath.Dir(basePath)
	ext := filepath.Ext(basePath)
	base := strings.TrimSuffix(filepath.Base(basePath), ext)
	return filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, part, ext))
}

// splitContinuationName reports whether basename matches "<stem>_<N>.pak"
// and, if so, returns the candidate parent basename and part number.
func splitContinuationName(basename string) (parentBase string, part int, ok bool) {
	m := continuationNamePattern.FindStringSubmatch(basename)
	if m == nil {
		return "", 0, false
	}

	n, err := strconv.Atoi(m[2])
	if err != nil || n <= 0 {
		return "", 0, false
	}

	return m[1] + filepath.Ext(basename), n, true
}
