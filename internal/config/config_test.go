package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "publisher.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadAppliesDefaults(t *testing.T) {
	p := writeConfig(t, `
source: docs
dest: public
output:
  list:
    templates: [templates/index.tmpl]
    order: {orderBy: date, type: Date}
`)
	cfg, res, err := Load(p)
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Equal(t, filepath.Dir(p), cfg.Prefix)
	require.Equal(t, defaultConcurrency, cfg.Concurrency)
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.Equal(t, LogFormatText, cfg.Logging.Format)
	require.Equal(t, MissingSkip, cfg.Output.OnMissingSortKey)
	require.True(t, cfg.Output.UsesFrontMatter())
	require.Equal(t, 10, cfg.Output.List.Size)
	require.Equal(t, OrderTypeDate, cfg.Output.List.Order.Type)
	require.Contains(t, res.Warnings, "normalized output.list.order.type from 'Date' to 'date'")

	order := cfg.Output.IndexOrder()
	require.Equal(t, "date", order.OrderBy)
	require.Equal(t, DirectionDesc, order.Direction)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("PUBLISHER_TEST_DEST", "site")
	p := writeConfig(t, "source: docs\ndest: ${PUBLISHER_TEST_DEST}\n")
	cfg, _, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, "site", cfg.Dest)
	require.Equal(t, filepath.Join(cfg.Prefix, "site"), cfg.DestDir())
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "configuration file not found")
}

func TestValidationFailures(t *testing.T) {
	cases := map[string]string{
		"missing source":         "dest: public\n",
		"list no templates":      "source: d\ndest: p\noutput:\n  lists:\n    - size: 2\n",
		"feed no template":       "source: d\ndest: p\noutput:\n  feeds:\n    - maxItems: 3\n",
		"paging not listed":      "source: d\ndest: p\noutput:\n  list: {templates: [a.tmpl], paging: b.tmpl}\n",
		"filter without key":     "source: d\ndest: p\noutput:\n  view: {templates: [v.tmpl], property: tags}\n",
		"order without property": "source: d\ndest: p\noutput:\n  order: {type: number}\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := Load(writeConfig(t, body))
			require.Error(t, err)
			require.Contains(t, err.Error(), "configuration validation failed")
		})
	}
}

func TestUnknownEnumFallsBackWithWarning(t *testing.T) {
	cfg, err := Parse([]byte("source: d\ndest: p\nlogging: {level: loud}\noutput:\n  onMissingSortKey: explode\n"))
	require.NoError(t, err)
	cfg, res, err := Finalize(cfg)
	require.NoError(t, err)
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.Equal(t, MissingSkip, cfg.Output.OnMissingSortKey)
	require.Len(t, res.Warnings, 2)
}

func TestIndexOrderResolution(t *testing.T) {
	listOrder := &OrderConfig{OrderBy: "title", Type: OrderTypeString, Direction: DirectionAsc}
	out := OutputConfig{Lists: []ListConfig{{Templates: []string{"a"}}, {Templates: []string{"b"}, Order: listOrder}}}
	require.Equal(t, *listOrder, out.IndexOrder())

	out.List = &ListConfig{Order: &OrderConfig{OrderBy: "n", Type: OrderTypeNumber}}
	require.Equal(t, "n", out.IndexOrder().OrderBy)
	require.Equal(t, DirectionDesc, out.IndexOrder().Direction)

	out.Order = &OrderConfig{OrderBy: "date", Type: OrderTypeDate}
	require.Equal(t, "date", out.IndexOrder().OrderBy)

	require.Equal(t, DirectionAsc, out.RequestedDirection(&OrderConfig{Direction: DirectionAsc}))
	require.Equal(t, Direction(""), out.RequestedDirection(nil))
	out.Order.Direction = DirectionAsc
	require.Equal(t, DirectionAsc, out.RequestedDirection(&OrderConfig{OrderBy: "n"}))
}

func TestLegacyShorthands(t *testing.T) {
	out := OutputConfig{
		RSS:   "templates/rss.tmpl",
		Feeds: []FeedConfig{{Template: "templates/atom.tmpl"}},
		List:  &ListConfig{Templates: []string{"l"}},
		Lists: []ListConfig{{Templates: []string{"m"}}},
	}
	feeds := out.AllFeeds()
	require.Len(t, feeds, 2)
	require.Equal(t, "templates/rss.tmpl", feeds[0].Template)
	lists := out.AllLists()
	require.Len(t, lists, 2)
	require.Equal(t, []string{"l"}, lists[0].Templates)
}

func TestPodcastEpisodeList(t *testing.T) {
	p := &PodcastConfig{Template: "p.tmpl", Filter: Filter{Property: "category", Key: "podcast"}}
	require.Nil(t, p.EpisodeList())
	p.Folder = "episodes"
	p.Templates = []string{"e.tmpl"}
	p.Paging = "e.tmpl"
	l := p.EpisodeList()
	require.NotNil(t, l)
	require.Equal(t, "episodes", l.Folder)
	require.Equal(t, "podcast", l.Key)
	require.Equal(t, "p.tmpl", p.Feed().Template)
}

func TestInitWritesLoadableConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "publisher.yaml")
	require.NoError(t, Init(p, false))
	require.Error(t, Init(p, false))
	require.NoError(t, Init(p, true))

	cfg, _, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, "docs", cfg.Source)
	require.True(t, cfg.Output.Outline)
	require.Len(t, cfg.Output.AllFeeds(), 1)
}
