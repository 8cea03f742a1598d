package index

// Ref is either an indexed document or a raw source path that has not been
// parsed (pure filesystem mode).
type Ref struct {
	doc  *Document
	path string
}

// Indexed wraps a document from the index.
func Indexed(d *Document) Ref { return Ref{doc: d, path: d.SourcePath} }

// RawPath wraps an unparsed source path relative to the prefix.
func RawPath(p string) Ref { return Ref{path: p} }

// Path returns the source path of either variant.
func (r Ref) Path() string { return r.path }

// Document returns the indexed document, if r is Indexed.
func (r Ref) Document() (*Document, bool) { return r.doc, r.doc != nil }

// Resolve normalizes r into a Document. Raw paths are read and parsed from prefix.
func (r Ref) Resolve(prefix string) (*Document, error) {
	if r.doc != nil {
		return r.doc, nil
	}
	return LoadDocument(prefix, r.path)
}
