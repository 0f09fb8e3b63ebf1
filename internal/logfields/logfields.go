package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyTemplate   = "template"
	KeyCategory   = "category"
	KeyEntity     = "entity"
	KeyPage       = "page"
	KeyPath       = "path"
	KeyFormat     = "format"
	KeyTopic      = "topic"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Template(name string) slog.Attr  { return slog.String(KeyTemplate, name) }
func Category(c string) slog.Attr     { return slog.String(KeyCategory, c) }
func Entity(desc string) slog.Attr    { return slog.String(KeyEntity, desc) }
func Page(p string) slog.Attr         { return slog.String(KeyPage, p) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Topic(title string) slog.Attr    { return slog.String(KeyTopic, title) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
