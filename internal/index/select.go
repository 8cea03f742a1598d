package index

import (
	"strings"

	"github.com/spf13/cast"

	"git.home.luguber.info/inful/publisher/internal/config"
	"git.home.luguber.info/inful/publisher/internal/logfields"
)

// Select returns the ordered documents whose front matter value at property
// contains key, case-insensitively. An empty property selects everything.
//
// Without a built index the Markdown files of the flat list are returned as
// raw paths in discovery order; the filter and direction cannot be honored
// and a warning is logged when either was requested.
func (i *Index) Select(f config.Filter, direction config.Direction) []Ref {
	if !i.built {
		if direction != "" || f.Property != "" {
			i.logger.Warn("Ordering and filters need front matter indexing; using filesystem order",
				logfields.Path(i.source), logfields.Stage("select"))
		}
		var out []Ref
		for _, p := range i.files {
			if IsMarkdown(p) {
				out = append(out, RawPath(p))
			}
		}
		return out
	}

	var out []Ref
	for _, d := range i.Ordered(direction) {
		if Matches(d, f) {
			out = append(out, Indexed(d))
		}
	}
	return out
}

// Matches applies the case-insensitive substring filter to one document.
func Matches(d *Document, f config.Filter) bool {
	if f.Property == "" {
		return true
	}
	v, ok := d.Get(f.Property)
	if !ok || v == nil {
		return false
	}
	return strings.Contains(strings.ToLower(filterText(v)), strings.ToLower(f.Key))
}

// filterText flattens list values so tags: [go, web] matches "go".
func filterText(v any) string {
	switch v.(type) {
	case []any, []string:
		return strings.Join(cast.ToStringSlice(v), " ")
	default:
		return cast.ToString(v)
	}
}
