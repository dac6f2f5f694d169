package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyDay        = "day"
	KeyTitle      = "title"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyCount      = "count"
	KeyStage      = "stage"
	KeyPolicy     = "policy"
	KeyLanguage   = "language"
	KeyURL        = "url"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Day(n int) slog.Attr             { return slog.Int(KeyDay, n) }
func Title(t string) slog.Attr        { return slog.String(KeyTitle, t) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Policy(p string) slog.Attr       { return slog.String(KeyPolicy, p) }
func Language(l string) slog.Attr     { return slog.String(KeyLanguage, l) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
