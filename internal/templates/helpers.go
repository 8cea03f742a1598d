package templates

import (
	"bytes"
	"encoding/xml"
	"reflect"
	"strings"
	"text/template"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/spf13/cast"
	"golang.org/x/net/html"
)

func helpers(link func(string) string, now func() time.Time) template.FuncMap {
	return template.FuncMap{
		"inRange":       inRange,
		"formatRSSDate": func(v any) string { return formatRSSDate(v, now) },
		"defaultOr":     defaultOr,
		"first":         first,
		"excerpt":       excerpt,
		"guid":          guid,
		"xml":           xmlEscape,
		"outputLink":    func(p any) string { return link(cast.ToString(p)) },
	}
}

// inRange reports whether the 0-based index current falls in the 1-based
// inclusive range [start, end].
func inRange(current, start, end any) bool {
	pos := cast.ToInt(current) + 1
	return cast.ToInt(start) <= pos && pos <= cast.ToInt(end)
}

// formatRSSDate renders v as an RFC 1123 date with numeric zone. Empty values
// use the current time; unparseable values are returned unchanged.
func formatRSSDate(v any, now func() time.Time) string {
	switch d := v.(type) {
	case nil:
		return now().Format(time.RFC1123Z)
	case time.Time:
		return d.Format(time.RFC1123Z)
	}
	s := strings.TrimSpace(cast.ToString(v))
	if s == "" {
		return now().Format(time.RFC1123Z)
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return s
	}
	return t.Format(time.RFC1123Z)
}

func defaultOr(v, def any) any {
	if v == nil {
		return def
	}
	if s, ok := v.(string); ok && s == "" {
		return def
	}
	return v
}

// first returns the first element of a slice or array, or nil.
func first(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() > 0 {
			return rv.Index(0).Interface()
		}
	case reflect.String:
		if rv.Len() > 0 {
			return string([]rune(rv.String())[0])
		}
	}
	return nil
}

// excerpt returns the first n words of the text content of an HTML fragment.
func excerpt(fragment any, n any) string {
	limit := cast.ToInt(n)
	z := html.NewTokenizer(strings.NewReader(cast.ToString(fragment)))
	var words []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(words, " ")
		case html.TextToken:
			for _, w := range strings.Fields(string(z.Text())) {
				if limit > 0 && len(words) == limit {
					return strings.Join(words, " ") + "…"
				}
				words = append(words, w)
			}
		}
	}
}

// guid derives a stable UUID from a link, suitable for feed item ids.
func guid(link any) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(cast.ToString(link))).String()
}

func xmlEscape(v any) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(cast.ToString(v)))
	return buf.String()
}
