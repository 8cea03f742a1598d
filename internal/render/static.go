package render

import (
	"context"

	"git.home.luguber.info/inful/publisher/internal/config"
	"git.home.luguber.info/inful/publisher/internal/paths"
)

// StaticRenderer renders templates that do not depend on documents. The raw
// template body is also exposed to itself as content.
type StaticRenderer struct {
	cfg config.StaticConfig
}

func NewStaticRenderer(cfg config.StaticConfig) *StaticRenderer { return &StaticRenderer{cfg: cfg} }

func (s *StaticRenderer) Name() string { return "static" }

func (s *StaticRenderer) Render(ctx context.Context, env *Env) Result {
	var res Result
	var units []unit
	for _, tmplPath := range s.cfg.Templates {
		tmpl, ok := env.loadTemplate(s.Name(), tmplPath, true, &res)
		if !ok {
			continue
		}
		body, err := env.Engine.Source(tmplPath)
		if err != nil {
			res.fail(err)
			continue
		}
		data := env.globals()
		data["content"] = body
		data[PublisherKey] = env.Publisher()
		units = append(units, unit{
			template: tmplPath,
			name:     paths.HTMLName(tmplPath),
			produce:  func() ([]byte, error) { return tmpl.Execute(data) },
		})
	}
	res.merge(env.batch(ctx, s.Name(), units))
	return res
}
