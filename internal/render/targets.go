package render

import (
	"os"
	"path/filepath"
	"sort"

	"git.home.luguber.info/inful/publisher/internal/paging"
	"git.home.luguber.info/inful/publisher/internal/paths"
)

// Target is one planned write, relative to the destination directory.
type Target struct {
	Renderer string `json:"renderer"`
	Template string `json:"template,omitempty"`
	Path     string `json:"path"`
}

// targeter is implemented by renderers whose writes can be planned without
// executing templates.
type targeter interface {
	Targets(env *Env) []Target
}

// Targets lists every write the plan would perform against env's index.
func (p Plan) Targets(env *Env) []Target {
	var out []Target
	for _, r := range p.All() {
		if t, ok := r.(targeter); ok {
			out = append(out, t.Targets(env)...)
		}
	}
	return out
}

// Collisions groups targets by write path and keeps the paths written more
// than once. Nothing prevents this at publish time; the last writer wins.
func Collisions(targets []Target) map[string][]Target {
	byPath := map[string][]Target{}
	for _, t := range targets {
		byPath[t.Path] = append(byPath[t.Path], t)
	}
	for p, ts := range byPath {
		if len(ts) < 2 {
			delete(byPath, p)
		}
	}
	return byPath
}

// SortedPaths returns the keys of a collision map in lexical order.
func SortedPaths(c map[string][]Target) []string {
	out := make([]string, 0, len(c))
	for p := range c {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (l *ListRenderer) Targets(env *Env) []Target {
	refs := env.Index.Select(l.cfg.Filter, env.Config.Output.RequestedDirection(l.cfg.Order))
	var out []Target
	for _, tmpl := range l.cfg.Templates {
		base := paths.HTMLName(tmpl)
		for _, p := range paging.Plan(refs, l.cfg.Size, l.cfg.Skip, tmpl == l.cfg.Paging) {
			out = append(out, Target{Renderer: l.name, Template: tmpl, Path: l.pageName(env, base, p.Number)})
		}
	}
	return out
}

func (v *ViewRenderer) Targets(env *Env) []Target {
	refs := env.Index.Select(v.cfg.Filter, "")
	var out []Target
	for _, tmpl := range v.cfg.Templates {
		for _, r := range refs {
			out = append(out, Target{Renderer: v.Name(), Template: tmpl, Path: env.Resolver.ViewFileName(r.Path())})
		}
	}
	return out
}

func (s *StaticRenderer) Targets(*Env) []Target {
	out := make([]Target, 0, len(s.cfg.Templates))
	for _, tmpl := range s.cfg.Templates {
		out = append(out, Target{Renderer: s.Name(), Template: tmpl, Path: paths.HTMLName(tmpl)})
	}
	return out
}

func (f *FeedRenderer) Targets(env *Env) []Target {
	return []Target{{
		Renderer: f.name,
		Template: f.cfg.Template,
		Path:     env.Resolver.ResolveWriteFileName(paths.XMLName(f.cfg.Template), f.cfg.Folder),
	}}
}

func (p *PodcastRenderer) Targets(env *Env) []Target {
	out := p.feed.Targets(env)
	if p.episodes != nil {
		out = append(out, p.episodes.Targets(env)...)
	}
	return out
}

func (t TOCRenderer) Targets(*Env) []Target {
	return []Target{{Renderer: t.Name(), Path: TOCFile}}
}

func (a AssetsRenderer) Targets(env *Env) []Target {
	out := make([]Target, 0, len(a.assets)+1)
	for _, asset := range a.assets {
		out = append(out, Target{Renderer: a.Name(), Path: filepath.ToSlash(filepath.Base(filepath.FromSlash(asset)))})
	}
	if _, err := os.Stat(env.Config.Abs(ServeFile)); err == nil {
		out = append(out, Target{Renderer: a.Name(), Path: ServeFile})
	}
	return out
}
