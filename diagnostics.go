// SPDX-License-Identifier: MIT
// Copyright (c) 2026 jamescook

package lspk

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// defaultLogger is the package-level fallback used whenever a caller does
// not supply a *Diagnostics. It logs at Warn level exactly like the rest of
// the structured-logging corpus this library follows.
var (
	defaultLoggerMu sync.RWMutex
	defaultLogger   logrus.FieldLogger = logrus.New()
)

// SetLogger overrides the package-level default logger used by readers that
// are not given an explicit *Diagnostics. It is safe to call concurrently.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		return
	}

	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = l
}

func currentDefaultLogger() logrus.FieldLogger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// Diagnostics collects non-fatal conditions encountered while parsing an
// archive. Unlike the error taxonomy in errors.go, a diagnostic never
// aborts a read: it is logged once through a structured logger and also
// retained verbatim so Package.Warnings() can return it without a caller
// having to scrape log output.
type Diagnostics struct {
	logger   logrus.FieldLogger
	mu       sync.Mutex
	messages []string
}

// NewDiagnostics returns a Diagnostics collector backed by logger. A nil
// logger falls back to the package-level default set by SetLogger.
func NewDiagnostics(logger logrus.FieldLogger) *Diagnostics {
	return &Diagnostics{logger: logger}
}

func (d *Diagnostics) logger_() logrus.FieldLogger {
	if d == nil || d.logger == nil {
		return currentDefaultLogger()
	}
	return d.logger
}

// warnUntestedFormat records the single untested-format warning emitted
// for V15/V16 archives (and, by the same reasoning, V7 archives parsed
// through the V9 reader path).
func (d *Diagnostics) warnUntestedFormat(version int, path string, reason string) {
	d.logger_().WithFields(logrus.Fields{
		"version": version,
		"path":    path,
		"reason":  reason,
	}).Warn("lspk: parsing untested archive format")

	msg := fmt.Sprintf("version %d at %q: untested format (%s)", version, path, reason)

	if d == nil {
		return
	}

	d.mu.Lock()
	d.messages = append(d.messages, msg)
	d.mu.Unlock()
}

// snapshot returns a copy of collected warning messages in emission order.
func (d *Diagnostics) snapshot() []string {
	if d == nil {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.messages))
	copy(out, d.messages)
	return out
}
