package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/publisher/internal/frontmatter"
	ierrors "git.home.luguber.info/inful/publisher/internal/index/errors"
)

// Document is one parsed Markdown source. It is immutable once indexed.
type Document struct {
	// SourcePath is slash separated and relative to the prefix, e.g. "docs/posts/a.md".
	SourcePath  string
	Fields      frontmatter.Fields
	Body        []byte
	SortKey     SortKey
	Fingerprint string
}

// Get returns a front matter value.
func (d *Document) Get(key string) (any, bool) { return d.Fields.Get(key) }

// LoadDocument reads and parses prefix/sourcePath without deriving a sort key.
func LoadDocument(prefix, sourcePath string) (*Document, error) {
	data, err := os.ReadFile(filepath.Join(prefix, filepath.FromSlash(sourcePath)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ierrors.ErrDocumentParse, sourcePath, err)
	}
	m, err := frontmatter.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ierrors.ErrDocumentParse, sourcePath, err)
	}
	return &Document{
		SourcePath:  sourcePath,
		Fields:      m.Fields,
		Body:        m.Body,
		Fingerprint: Fingerprint(m.Fields, m.Body),
	}, nil
}

// Fingerprint hashes the front matter (minus any stored fingerprint field)
// together with the body.
func Fingerprint(fields frontmatter.Fields, body []byte) string {
	hashed := fields.Map()
	delete(hashed, mdfp.FingerprintField)

	fm := ""
	if len(hashed) > 0 {
		if out, err := yaml.Marshal(hashed); err == nil {
			fm = strings.TrimSuffix(string(out), "\n")
		}
	}
	return mdfp.CalculateFingerprintFromParts(fm, string(body))
}
