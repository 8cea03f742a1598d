package render

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/publisher/internal/config"
	"git.home.luguber.info/inful/publisher/internal/logfields"
	"git.home.luguber.info/inful/publisher/internal/paging"
	"git.home.luguber.info/inful/publisher/internal/paths"
)

// ListRenderer renders a set of templates over one shared document
// collection. Only the paging template is paginated; its siblings render the
// first page.
type ListRenderer struct {
	name string
	cfg  config.ListConfig
}

// NewListRenderer returns a list renderer reported under name.
func NewListRenderer(name string, cfg config.ListConfig) *ListRenderer {
	return &ListRenderer{name: name, cfg: cfg}
}

func (l *ListRenderer) Name() string { return l.name }

func (l *ListRenderer) Render(ctx context.Context, env *Env) Result {
	if env.IndexAborted {
		return skipped(l.name, "document index aborted; ordered artifacts are not rendered")
	}
	var res Result
	dir := env.Config.Output.RequestedDirection(l.cfg.Order)
	sel := env.selectDocuments(ctx, l.cfg.Filter, dir, 0, &res)
	env.logger().Debug("List selection",
		logfields.Renderer(l.name),
		logfields.Count(len(sel.items)),
		slog.Int("size", l.cfg.Size))

	var units []unit
	for _, tmplPath := range l.cfg.Templates {
		tmpl, ok := env.loadTemplate(l.name, tmplPath, true, &res)
		if !ok {
			continue
		}
		base := paths.HTMLName(tmplPath)
		pages := paging.Plan(sel.items, l.cfg.Size, l.cfg.Skip, tmplPath == l.cfg.Paging)
		for _, p := range pages {
			data := l.pageData(env, base, p)
			units = append(units, unit{
				template: tmplPath,
				name:     l.pageName(env, base, p.Number),
				page:     p.Number,
				produce:  func() ([]byte, error) { return tmpl.Execute(data) },
			})
		}
	}
	res.merge(env.batch(ctx, l.name, units))
	return res
}

// pageName is the canonical base name for page 1 and folder/n.html after it.
func (l *ListRenderer) pageName(env *Env, base string, n int) string {
	if n <= 1 {
		return base
	}
	return env.Resolver.ResolveWriteFileName(paths.PageFileName(n), l.cfg.Folder)
}

func (l *ListRenderer) pageLink(env *Env, base string, n int) string {
	return "/" + l.pageName(env, base, n)
}

func (l *ListRenderer) pageData(env *Env, base string, p paging.Page[map[string]any]) map[string]any {
	data := env.globals()
	data["posts"] = p.Items
	data["pagingFolder"] = l.cfg.Folder
	data["pageNumber"] = p.Number
	data["totalPages"] = p.Total
	if p.Prev > 0 {
		data["prevPage"] = p.Prev
		data["prevLink"] = l.pageLink(env, base, p.Prev)
	}
	if p.Next > 0 {
		data["nextPage"] = p.Next
		data["nextLink"] = l.pageLink(env, base, p.Next)
	}
	data[PublisherKey] = env.Publisher()
	return data
}

// listName numbers list renderers in configuration order.
func listName(kind string, i int) string {
	if i == 0 {
		return kind
	}
	return fmt.Sprintf("%s[%d]", kind, i)
}
