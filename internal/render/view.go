package render

import (
	"context"
	"maps"

	"git.home.luguber.info/inful/publisher/internal/config"
)

// ViewRenderer renders every selected document through each template to
// dest/<source-relative path>.html.
type ViewRenderer struct {
	cfg config.ViewConfig
}

func NewViewRenderer(cfg config.ViewConfig) *ViewRenderer { return &ViewRenderer{cfg: cfg} }

func (v *ViewRenderer) Name() string { return "view" }

func (v *ViewRenderer) Render(ctx context.Context, env *Env) Result {
	if env.IndexAborted {
		return skipped(v.Name(), "document index aborted; document views are not rendered")
	}
	var res Result
	sel := env.selectDocuments(ctx, v.cfg.Filter, "", 0, &res)

	var units []unit
	for _, tmplPath := range v.cfg.Templates {
		tmpl, ok := env.loadTemplate(v.Name(), tmplPath, true, &res)
		if !ok {
			continue
		}
		for i, doc := range sel.docs {
			data := env.globals()
			maps.Copy(data, sel.items[i])
			data[PublisherKey] = env.Publisher()
			units = append(units, unit{
				template: tmplPath,
				name:     env.Resolver.ViewFileName(doc.SourcePath),
				produce:  func() ([]byte, error) { return tmpl.Execute(data) },
			})
		}
	}
	res.merge(env.batch(ctx, v.Name(), units))
	return res
}
