package render

import "git.home.luguber.info/inful/publisher/internal/config"

// Plan is the renderer schedule of one run. Outline runs alone first because
// TOC reads its output; Artifacts run concurrently; Assets runs last.
type Plan struct {
	Outline   Renderer
	Artifacts []Renderer
	Assets    Renderer
}

// PlanFor derives the schedule from the output configuration.
func PlanFor(cfg *config.Config) Plan {
	var p Plan
	out := &cfg.Output
	if out.Outline {
		p.Outline = NewOutlineRenderer()
	}
	p.Artifacts = append(p.Artifacts, NewTOCRenderer())
	for i, l := range out.AllLists() {
		p.Artifacts = append(p.Artifacts, NewListRenderer(listName("list", i), l))
	}
	if out.View != nil {
		p.Artifacts = append(p.Artifacts, NewViewRenderer(*out.View))
	}
	if out.Static != nil {
		p.Artifacts = append(p.Artifacts, NewStaticRenderer(*out.Static))
	}
	for i, f := range out.AllFeeds() {
		p.Artifacts = append(p.Artifacts, NewFeedRenderer(listName("feed", i), f))
	}
	if out.Podcast != nil {
		p.Artifacts = append(p.Artifacts, NewPodcastRenderer(*out.Podcast))
	}
	p.Assets = NewAssetsRenderer(cfg.Assets)
	return p
}

// All returns every scheduled renderer in execution order.
func (p Plan) All() []Renderer {
	var out []Renderer
	if p.Outline != nil {
		out = append(out, p.Outline)
	}
	out = append(out, p.Artifacts...)
	if p.Assets != nil {
		out = append(out, p.Assets)
	}
	return out
}
