package render

import (
	"context"

	"git.home.luguber.info/inful/publisher/internal/config"
	"git.home.luguber.info/inful/publisher/internal/paths"
)

// FeedRenderer renders one XML feed. The category filter runs before the
// maxItems cap, which keeps the newest entries of the ordered selection.
type FeedRenderer struct {
	name string
	cfg  config.FeedConfig
}

func NewFeedRenderer(name string, cfg config.FeedConfig) *FeedRenderer {
	return &FeedRenderer{name: name, cfg: cfg}
}

func (f *FeedRenderer) Name() string { return f.name }

func (f *FeedRenderer) Render(ctx context.Context, env *Env) Result {
	if env.IndexAborted {
		return skipped(f.name, "document index aborted; feeds are not rendered")
	}
	var res Result
	tmpl, ok := env.loadTemplate(f.name, f.cfg.Template, false, &res)
	if !ok {
		return res
	}
	dir := env.Config.Output.RequestedDirection(f.cfg.Order)
	sel := env.selectDocuments(ctx, f.cfg.Filter, dir, f.cfg.MaxItems, &res)

	data := env.globals()
	data["posts"] = sel.items
	data[PublisherKey] = env.Publisher()
	res.merge(env.batch(ctx, f.name, []unit{{
		template: f.cfg.Template,
		name:     env.Resolver.ResolveWriteFileName(paths.XMLName(f.cfg.Template), f.cfg.Folder),
		produce:  func() ([]byte, error) { return tmpl.Execute(data) },
	}}))
	return res
}
