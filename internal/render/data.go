package render

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/publisher/internal/config"
	"git.home.luguber.info/inful/publisher/internal/index"
	"git.home.luguber.info/inful/publisher/internal/logfields"
	rerrors "git.home.luguber.info/inful/publisher/internal/render/errors"
)

// DocumentData is the template view of one document: every front matter key
// plus content (rendered HTML), link, sourcePath and fingerprint.
func (e *Env) DocumentData(doc *index.Document) (map[string]any, error) {
	html, err := e.renderContent(doc)
	if err != nil {
		return nil, err
	}
	data := doc.Fields.Map()
	data["content"] = html
	data["link"] = e.Resolver.ResolveOutputLink(doc.SourcePath)
	data["sourcePath"] = doc.SourcePath
	data["fingerprint"] = doc.Fingerprint
	return data, nil
}

// renderContent converts a body to HTML once per run; several renderers
// usually need the same document.
func (e *Env) renderContent(doc *index.Document) (string, error) {
	e.contentMu.Lock()
	if html, ok := e.content[doc.SourcePath]; ok {
		e.contentMu.Unlock()
		return html, nil
	}
	e.contentMu.Unlock()

	html, err := e.Converter.Convert(doc.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", rerrors.ErrDocumentParse, doc.SourcePath, err)
	}

	e.contentMu.Lock()
	if e.content == nil {
		e.content = map[string]string{}
	}
	e.content[doc.SourcePath] = html
	e.contentMu.Unlock()
	return html, nil
}

// selection is a resolved, template-ready document collection.
type selection struct {
	docs  []*index.Document
	items []map[string]any
}

// selectDocuments applies the filter and direction, truncates to limit when
// positive, then resolves every ref. Documents that cannot be read or
// converted are left out and reported in res.
func (e *Env) selectDocuments(ctx context.Context, f config.Filter, dir config.Direction, limit int, res *Result) selection {
	refs := e.Index.Select(f, dir)
	if limit > 0 && len(refs) > limit {
		refs = refs[:limit]
	}
	var sel selection
	for _, ref := range refs {
		if ctx.Err() != nil {
			res.fail(ctx.Err())
			break
		}
		doc, err := ref.Resolve(e.Index.Prefix())
		if err == nil {
			var data map[string]any
			data, err = e.DocumentData(doc)
			if err == nil {
				sel.docs = append(sel.docs, doc)
				sel.items = append(sel.items, data)
				continue
			}
		}
		e.logger().Warn("Skipping document", logfields.Document(ref.Path()), logfields.Error(err))
		res.fail(err)
	}
	return sel
}
