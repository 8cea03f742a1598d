package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/publisher/internal/config"
	"git.home.luguber.info/inful/publisher/internal/index"
)

func buildIndex(t *testing.T, files map[string]string) *index.Index {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	idx, err := index.Build(context.Background(), index.Options{
		Prefix:      root,
		Source:      "docs",
		Dest:        "public",
		Order:       config.OrderConfig{OrderBy: "weight", Type: config.OrderTypeNumber, Direction: config.DirectionAsc},
		OnMissing:   config.MissingSkip,
		FrontMatter: true,
	})
	require.NoError(t, err)
	return idx
}

func TestSnapshotRoundTrip(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"docs/b.md":     "---\ntitle: B\nweight: 2\n---\nB\n",
		"docs/a.md":     "---\ntitle: A\nweight: 1\ntags: [x, y]\n---\nA\n",
		"docs/logo.png": "png",
	})

	s, err := Open(filepath.Join(t.TempDir(), "publisher.db"))
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()

	ctx := context.Background()
	require.NoError(t, s.Snapshot(ctx, "run-1", idx))

	docs, err := s.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "docs/a.md", docs[0].SourcePath)
	require.Equal(t, "docs/b.md", docs[1].SourcePath)
	require.NotEmpty(t, docs[0].Fingerprint)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(docs[0].Fields, &fields))
	require.Equal(t, "A", fields["title"])
	require.Equal(t, []any{"x", "y"}, fields["tags"])

	files, err := s.Files(ctx)
	require.NoError(t, err)
	require.Equal(t, idx.Files(), files)

	run, err := s.LastRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, run)
	require.Equal(t, "run-1", run.RunID)
	require.Equal(t, 2, run.Documents)
	require.Equal(t, "docs", run.Source)
}

func TestSnapshotReplacesPreviousContents(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()
	ctx := context.Background()

	first := buildIndex(t, map[string]string{
		"docs/a.md": "---\nweight: 1\n---\n",
		"docs/b.md": "---\nweight: 2\n---\n",
	})
	require.NoError(t, s.Snapshot(ctx, "run-1", first))

	second := buildIndex(t, map[string]string{"docs/c.md": "---\nweight: 3\n---\n"})
	require.NoError(t, s.Snapshot(ctx, "run-2", second))

	docs, err := s.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "docs/c.md", docs[0].SourcePath)
}

func TestLastRunEmpty(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()

	run, err := s.LastRun(context.Background())
	require.NoError(t, err)
	require.Nil(t, run)
}
