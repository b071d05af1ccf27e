package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the exit code for an error returned from a command.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	dve, ok := As(err)
	if !ok {
		return 1
	}

	switch dve.Category {
	case CategoryValidation, CategoryConfig:
		return 2 // Invalid usage
	case CategoryFileSystem, CategoryMarkup:
		return 3
	case CategoryGit, CategoryNetwork:
		return 4 // External system error
	default:
		return 1
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	dve, ok := As(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return dve.Error()
	}

	msg := dve.Message
	if dve.Category != CategoryConfig && dve.Category != CategoryValidation {
		msg = fmt.Sprintf("%s: %s", dve.Category, dve.Message)
	} else {
		for _, key := range []string{"field", "reason", "pattern", "constraint", "path"} {
			if v, ok := dve.Context[key]; ok {
				msg = fmt.Sprintf("%s: %v", msg, v)
			}
		}
	}
	if dve.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, dve.Cause)
	}
	return msg
}

// Report logs err and writes the user-facing message to w. It returns the exit code.
func (a *CLIErrorAdapter) Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	a.logError(err)
	_, _ = fmt.Fprintln(w, a.FormatError(err))
	return a.ExitCodeFor(err)
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	dve, ok := As(err)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return
	}

	attrs := []slog.Attr{
		slog.String("category", string(dve.Category)),
	}
	for k, v := range dve.Context {
		attrs = append(attrs, slog.Any(k, v))
	}
	a.logger.LogAttrs(context.Background(), slogLevel(dve.Severity), dve.Message, attrs...)
}

func slogLevel(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
