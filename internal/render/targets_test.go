package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/publisher/internal/config"
)

func TestPlanFor_SchedulesOutlineFirstAndAssetsLast(t *testing.T) {
	f := newFixture(t, map[string]string{"docs/a.md": postA}, func(c *config.Config) {
		c.Output.Outline = true
		c.Output.RSS = "t/rss.tmpl"
		c.Output.Lists = []config.ListConfig{{Templates: []string{"t/a.tmpl"}}, {Templates: []string{"t/b.tmpl"}}}
		c.Output.Static = &config.StaticConfig{Templates: []string{"t/about.tmpl"}}
	})

	plan := PlanFor(f.env.Config)
	var names []string
	for _, r := range plan.All() {
		names = append(names, r.Name())
	}
	require.Equal(t, []string{"outline", "toc", "list", "list[1]", "static", "feed", "assets"}, names)
}

func TestPlanTargets_PagesAndCollisions(t *testing.T) {
	f := newFixture(t, map[string]string{
		"docs/a.md": postA,
		"docs/b.md": postB,
	}, func(c *config.Config) {
		c.Output.List = &config.ListConfig{
			Templates: []string{"t/index.tmpl"},
			Paging:    "t/index.tmpl",
			Folder:    "page",
			Size:      1,
		}
		c.Output.View = &config.ViewConfig{Templates: []string{"t/post.tmpl", "t/amp.tmpl"}}
		c.Output.Static = &config.StaticConfig{Templates: []string{"t/a.tmpl"}}
	})

	targets := PlanFor(f.env.Config).Targets(f.env)
	var listPaths []string
	for _, tg := range targets {
		if tg.Renderer == "list" {
			listPaths = append(listPaths, tg.Path)
		}
	}
	require.Equal(t, []string{"index.html", "page/2.html"}, listPaths)

	collisions := Collisions(targets)
	require.Equal(t, []string{"a.html", "b.html"}, SortedPaths(collisions))
	require.Len(t, collisions["a.html"], 3)
	require.Len(t, collisions["b.html"], 2)
}
