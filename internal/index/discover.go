package index

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	ierrors "git.home.luguber.info/inful/publisher/internal/index/errors"
)

// SummaryFile is the generated outline written at the source root.
const SummaryFile = "SUMMARY.md"

// Matcher decides whether a discovered path is left out of the run.
type Matcher struct {
	dest     string
	patterns []string
}

// NewMatcher returns a matcher with the built-in exclusions (node_modules,
// the destination directory, SUMMARY.md and dotfiles) plus extra patterns.
// Patterns use path.Match syntax against both the prefix-relative path and
// the base name; a trailing "/**" excludes a whole subtree.
func NewMatcher(dest string, patterns []string) *Matcher {
	return &Matcher{dest: strings.Trim(filepath.ToSlash(dest), "/"), patterns: patterns}
}

// Excluded reports whether rel (slash separated, relative to the prefix) is excluded.
func (m *Matcher) Excluded(rel string, isDir bool) bool {
	rel = strings.TrimSuffix(rel, "/")
	base := path.Base(rel)
	if strings.HasPrefix(base, ".") || base == "node_modules" {
		return true
	}
	if !isDir && base == SummaryFile {
		return true
	}
	if m.dest != "" && (rel == m.dest || strings.HasPrefix(rel, m.dest+"/")) {
		return true
	}
	for _, p := range m.patterns {
		if sub, ok := strings.CutSuffix(p, "/**"); ok {
			if rel == sub || strings.HasPrefix(rel, sub+"/") {
				return true
			}
			continue
		}
		if ok, _ := path.Match(p, rel); ok {
			return true
		}
		if ok, _ := path.Match(p, base); ok {
			return true
		}
	}
	return false
}

// Discover walks prefix/source and returns every entry as a slash separated
// path relative to prefix, in lexical order. Directories carry a trailing "/"
// and the source root itself is the first entry.
func Discover(prefix, source string, m *Matcher) ([]string, error) {
	root := filepath.Join(prefix, filepath.FromSlash(source))
	var out []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, rerr := filepath.Rel(prefix, p)
		if rerr != nil {
			return rerr
		}
		rel = filepath.ToSlash(rel)
		if p != root && m != nil && m.Excluded(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			rel += "/"
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ierrors.ErrWalkFailed, root, err)
	}
	return out, nil
}

// IsMarkdown reports whether p names a Markdown file.
func IsMarkdown(p string) bool {
	return !strings.HasSuffix(p, "/") && strings.EqualFold(path.Ext(p), ".md")
}
