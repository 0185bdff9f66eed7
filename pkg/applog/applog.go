// Package applog wraps charmbracelet/log for component-level debug
// tracing inside the hot-path packages (quadtree, force, engine). Callers inject a *Logger; the zero value behaves as a
// silent discard logger so production step loops pay no logging cost
// unless a caller opts in.
package applog

import (
	"io"

	"github.com/charmbracelet/log"
)

// Logger is a thin alias so hot-path packages depend on this package
// rather than charmbracelet/log directly.
type Logger = log.Logger

var discard = log.NewWithOptions(io.Discard, log.Options{})

// Discard returns a logger that drops everything, the default for
// packages that receive no explicit logger.
func Discard() *Logger {
	return discard
}

// New creates a debug-level component logger writing to w, in the
// style used across the codebase's hot paths.
func New(w io.Writer, prefix string) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    false,
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          prefix,
	})
	return l
}
