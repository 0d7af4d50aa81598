package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/fileutil"
)

// resultsLog is the append-only text log shared by every run.
const resultsLog = "results.log"

// openResultsLog opens <dir>/results.log for appending.
func openResultsLog(dir string) (*os.File, error) {
	return fileutil.OpenAppend(filepath.Join(dir, resultsLog))
}

// newFileLogger writes timestamped lines prefixed with the run ID.
func newFileLogger(w io.Writer, runID string, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          runID,
		Level:           level,
	})
}

// newConsoleLogger reports to stderr. Outside debug mode only warnings and
// errors are shown so they do not interleave with the table.
func newConsoleLogger(debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{Level: level})
}
