package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyChapter    = "chapter"
	KeySource     = "source_path"
	KeyPath       = "path"
	KeyDepth      = "depth"
	KeyLinks      = "links"
	KeyURLs       = "urls"
	KeyRenderer   = "renderer"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyFile       = "file"
	KeyURL        = "url"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Chapter(name string) slog.Attr   { return slog.String(KeyChapter, name) }
func Source(p string) slog.Attr       { return slog.String(KeySource, p) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Depth(d int) slog.Attr           { return slog.Int(KeyDepth, d) }
func Links(n int) slog.Attr           { return slog.Int(KeyLinks, n) }
func URLs(n int) slog.Attr            { return slog.Int(KeyURLs, n) }
func Renderer(r string) slog.Attr     { return slog.String(KeyRenderer, r) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
