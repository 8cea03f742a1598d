package render

import (
	"context"

	"git.home.luguber.info/inful/publisher/internal/config"
)

// PodcastRenderer is a filtered feed plus, when a folder and templates are
// configured, a paginated episode list written under that folder.
type PodcastRenderer struct {
	feed     *FeedRenderer
	episodes *ListRenderer
}

func NewPodcastRenderer(cfg config.PodcastConfig) *PodcastRenderer {
	p := &PodcastRenderer{feed: NewFeedRenderer("podcast", cfg.Feed())}
	if list := cfg.EpisodeList(); list != nil {
		p.episodes = NewListRenderer("podcast", *list)
	}
	return p
}

func (p *PodcastRenderer) Name() string { return "podcast" }

func (p *PodcastRenderer) Render(ctx context.Context, env *Env) Result {
	res := p.feed.Render(ctx, env)
	if res.Skipped || p.episodes == nil {
		return res
	}
	res.merge(p.episodes.Render(ctx, env))
	return res
}
