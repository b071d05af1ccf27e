package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID    = "run_id"
	KeyRoot     = "root"
	KeyFile     = "file"
	KeyVersion  = "version"
	KeyVersions = "versions"
	KeyOutcome  = "outcome"
	KeyCount    = "count"
	KeyDuration = "duration_ms"
	KeyError    = "error"
	KeyCommit   = "commit"
	KeySubject  = "subject"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Root(p string) slog.Attr         { return slog.String(KeyRoot, p) }
func File(p string) slog.Attr         { return slog.String(KeyFile, p) }
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func Versions(v []string) slog.Attr   { return slog.Any(KeyVersions, v) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDuration, ms) }
func Commit(h string) slog.Attr       { return slog.String(KeyCommit, h) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
