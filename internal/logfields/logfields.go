// Package logfields holds the canonical slog attribute keys used by the publisher.
package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyRenderer   = "renderer"
	KeyTemplate   = "template"
	KeyArtifact   = "artifact"
	KeyPage       = "page"
	KeyPath       = "path"
	KeyDocument   = "document"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeySize       = "size"
	KeyError      = "error"
)

func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Renderer(name string) slog.Attr  { return slog.String(KeyRenderer, name) }
func Template(path string) slog.Attr  { return slog.String(KeyTemplate, path) }
func Artifact(path string) slog.Attr  { return slog.String(KeyArtifact, path) }
func Page(n int) slog.Attr            { return slog.Int(KeyPage, n) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Document(path string) slog.Attr  { return slog.String(KeyDocument, path) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Size(human string) slog.Attr     { return slog.String(KeySize, human) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
