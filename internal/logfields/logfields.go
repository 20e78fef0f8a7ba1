package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyMutation = "mutation"
	KeyPath     = "path"
	KeyFile     = "file"
	KeyJobID    = "job_id"
	KeyFrames   = "frames"
	KeyCount    = "count"
	KeyRoot     = "root"
	KeyRunID    = "run_id"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Mutation(m string) slog.Attr { return slog.String(KeyMutation, m) }
func Path(p string) slog.Attr     { return slog.String(KeyPath, p) }
func File(f string) slog.Attr     { return slog.String(KeyFile, f) }
func JobID(id string) slog.Attr   { return slog.String(KeyJobID, id) }
func Frames(n int) slog.Attr      { return slog.Int(KeyFrames, n) }
func Count(n int) slog.Attr       { return slog.Int(KeyCount, n) }
func Root(r string) slog.Attr     { return slog.String(KeyRoot, r) }
func RunID(id string) slog.Attr   { return slog.String(KeyRunID, id) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
