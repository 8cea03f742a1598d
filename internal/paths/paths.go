// Package paths maps source documents and templates to public links and to
// write locations under the destination directory.
package paths

import (
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/publisher/internal/config"
)

const (
	markdownExt = ".md"
	htmlExt     = ".html"
	xmlExt      = ".xml"
)

// Resolver resolves links and write names for one configuration. It never
// touches the filesystem.
type Resolver struct {
	prefix           string
	source           string
	dest             string
	includeExtension bool
}

// NewResolver builds a resolver from the loaded configuration.
func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{
		prefix:           filepath.ToSlash(cfg.Prefix),
		source:           strings.Trim(cfg.Source, "/"),
		dest:             strings.Trim(cfg.Dest, "/"),
		includeExtension: cfg.Output.IncludeExtension,
	}
}

// ResolveOutputLink maps a source path (absolute, or relative to the prefix)
// to its public site link. The prefix and the leading source or destination
// directory are stripped, and a trailing ".md" becomes ".html" when
// includeExtension is set or is dropped otherwise.
//
// Links start with "/". Input already starting with "/" after removing the
// prefix is taken as a link, which makes the function idempotent.
func (r *Resolver) ResolveOutputLink(p string) string {
	p = filepath.ToSlash(p)
	if r.prefix != "" && r.prefix != "/" {
		if rest, ok := strings.CutPrefix(p, r.prefix+"/"); ok {
			p = rest
		}
	}
	if !strings.HasPrefix(p, "/") {
		p = strings.TrimPrefix(p, "./")
		switch {
		case r.source != "" && strings.HasPrefix(p, r.source+"/"):
			p = strings.TrimPrefix(p, r.source+"/")
		case r.dest != "" && strings.HasPrefix(p, r.dest+"/"):
			p = strings.TrimPrefix(p, r.dest+"/")
		}
		p = "/" + p
	}
	if strings.HasSuffix(p, markdownExt) {
		p = strings.TrimSuffix(p, markdownExt)
		if r.includeExtension {
			p += htmlExt
		}
	}
	return p
}

// ResolveWriteFileName returns baseName, or folder/baseName when a folder is
// configured. The result is relative to the destination directory.
func (r *Resolver) ResolveWriteFileName(baseName, folder string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return baseName
	}
	return folder + "/" + baseName
}

// ViewFileName is the write name of a single-document page: the source path
// relative to the source directory with ".md" replaced by ".html".
func (r *Resolver) ViewFileName(sourcePath string) string {
	rel := strings.TrimPrefix(filepath.ToSlash(sourcePath), r.source+"/")
	return strings.TrimSuffix(rel, path.Ext(rel)) + htmlExt
}

// DestPath joins a write name onto the absolute destination directory.
func (r *Resolver) DestPath(writeName string) string {
	return filepath.Join(filepath.FromSlash(r.prefix), filepath.FromSlash(r.dest), filepath.FromSlash(writeName))
}

// PageFileName is the write name of page n (n > 1) of a paginated artifact.
func PageFileName(n int) string {
	return strconv.Itoa(n) + htmlExt
}

// HTMLName derives an HTML artifact name from a template path: "t/index.tmpl" -> "index.html".
func HTMLName(tmpl string) string { return artifactName(tmpl, htmlExt) }

// XMLName derives a feed artifact name from a template path: "t/rss.tmpl" -> "rss.xml".
func XMLName(tmpl string) string { return artifactName(tmpl, xmlExt) }

func artifactName(tmpl, ext string) string {
	base := path.Base(filepath.ToSlash(tmpl))
	return strings.TrimSuffix(base, path.Ext(base)) + ext
}
