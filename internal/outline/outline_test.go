package outline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/publisher/internal/index"
)

func TestBuildOutline_HeadingDepthFollowsNesting(t *testing.T) {
	tree := index.BuildTree([]string{
		"docs/",
		"docs/getting_started.md",
		"docs/a/",
		"docs/a/b/",
		"docs/a/b/c.md",
		"docs/images/",
		"docs/images/logo.png",
		"docs/notes.txt",
	})

	out, err := BuildOutline(tree, "docs/")
	require.NoError(t, err)
	require.Equal(t, "# Summary\n\n"+
		"# [Getting Started](./getting_started.md)\n\n"+
		"# A\n\n"+
		"## B\n\n"+
		"### [C](./a/b/c.md)\n\n"+
		"# Images\n\n"+
		"## [Logo](./images/logo.png)\n\n"+
		"# [Notes](./notes.txt)\n\n", out)
}

func TestBuildOutline_TopLevelIsOneHashSoThirdLevelDirGetsFour(t *testing.T) {
	tree := index.BuildTree([]string{"docs/", "docs/x/", "docs/x/y/", "docs/x/y/z/", "docs/x/y/z/deep_page.md"})

	out, err := BuildOutline(tree, "docs/")
	require.NoError(t, err)

	var leaf, group string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Deep Page") {
			leaf = line
		}
		if strings.HasSuffix(line, " Z") {
			group = line
		}
	}
	require.Equal(t, "#### [Deep Page](./x/y/z/deep_page.md)", leaf)
	require.Equal(t, "### Z", group)
}

func TestBuildOutline_UnknownRoot(t *testing.T) {
	_, err := BuildOutline(index.BuildTree([]string{"docs/"}), "src/")
	require.ErrorIs(t, err, ErrRootNotFound)
}

func TestTitle(t *testing.T) {
	require.Equal(t, "Getting Started", Title("getting_started"))
	require.Equal(t, "API Reference", Title("API_reference"))
}

func TestWriteAndRead(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, "# Summary\n\n"))
	text, err := Read(dir)
	require.NoError(t, err)
	require.Equal(t, "# Summary\n\n", text)
	require.FileExists(t, SummaryPath(dir))

	_, err = Read(t.TempDir())
	require.Error(t, err)
}
