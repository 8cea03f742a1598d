// Package frontmatter splits YAML front matter from Markdown and decodes it
// into an ordered set of fields.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// ErrNotMapping indicates the front matter block is valid YAML but not a mapping.
var ErrNotMapping = errors.New("yaml frontmatter is not a mapping")

// Style captures the newline convention of the source document.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// Split separates YAML front matter (`---` delimited) from the Markdown body.
//
// If the document does not start with a delimiter, had is false and body is the
// full input. A closing delimiter on the last line without a newline is accepted.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, style Style, err error) {
	style = detectStyle(content)

	nl := style.Newline
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, style, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, style, nil
	}
	if bytes.Equal(rest, []byte("---")) {
		return []byte{}, []byte{}, true, style, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	if idx := bytes.Index(rest, closeSeq); idx >= 0 {
		return rest[:idx+len(nl)], rest[idx+len(closeSeq):], true, style, nil
	}
	closeEOF := []byte(nl + "---")
	if bytes.HasSuffix(rest, closeEOF) {
		return rest[:len(rest)-len("---")], []byte{}, true, style, nil
	}
	return nil, nil, false, style, ErrMissingClosingDelimiter
}

// Fields is a front matter mapping that remembers key order.
type Fields struct {
	keys   []string
	values map[string]any
}

// Keys returns field names in document order.
func (f Fields) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Get returns the value stored under key.
func (f Fields) Get(key string) (any, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f Fields) Len() int { return len(f.keys) }

// Map returns a copy of the fields as a plain map.
func (f Fields) Map() map[string]any {
	out := make(map[string]any, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Set adds or replaces a field. New keys are appended.
func (f *Fields) Set(key string, value any) {
	if f.values == nil {
		f.values = map[string]any{}
	}
	if _, exists := f.values[key]; !exists {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// ParseYAML decodes raw YAML front matter (without delimiters). Empty input
// yields empty fields. Repeated keys keep their first position and last value.
func ParseYAML(frontmatter []byte) (Fields, error) {
	var fields Fields
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return fields, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(frontmatter, &doc); err != nil {
		return fields, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return fields, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fields, ErrNotMapping
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		var v any
		if err := root.Content[i+1].Decode(&v); err != nil {
			return fields, fmt.Errorf("field %q: %w", root.Content[i].Value, err)
		}
		fields.Set(root.Content[i].Value, v)
	}
	return fields, nil
}

// Matter is a parsed Markdown document.
type Matter struct {
	Fields Fields
	Body   []byte
	Had    bool
	Style  Style
}

// Parse splits and decodes a Markdown document.
func Parse(content []byte) (Matter, error) {
	fm, body, had, style, err := Split(content)
	if err != nil {
		return Matter{}, err
	}
	fields, err := ParseYAML(fm)
	if err != nil {
		return Matter{}, err
	}
	return Matter{Fields: fields, Body: body, Had: had, Style: style}, nil
}

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			newline = "\n"
			break
		}
	}

	hasTrailingNewline := len(content) > 0 && (content[len(content)-1] == '\n')

	return Style{
		Newline:            newline,
		HasTrailingNewline: hasTrailingNewline,
	}
}
