package index

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildTree_ThreadsDepth(t *testing.T) {
	tree := BuildTree([]string{
		"docs/",
		"docs/intro.md",
		"docs/a/",
		"docs/a/b/",
		"docs/a/b/c.md",
		"docs/img.png",
	})

	root := tree.Find("docs/")
	require.NotNil(t, root)
	require.Equal(t, 1, root.Depth)
	require.True(t, root.IsGroup())
	require.Len(t, root.Children, 3)
	require.Equal(t, "intro.md", root.Children[0].Name)
	require.Equal(t, "a", root.Children[1].Name)

	leaf := tree.Find("docs/a/b/c.md")
	require.NotNil(t, leaf)
	require.Equal(t, 4, leaf.Depth)
	require.False(t, leaf.IsGroup())
	require.Equal(t, 3, tree.Find("docs/a/b/").Depth)
}

func TestBuildTree_CreatesMissingAncestors(t *testing.T) {
	tree := BuildTree([]string{"x/y/z.md"})
	require.NotNil(t, tree.Find("x/"))
	require.NotNil(t, tree.Find("x/y/"))
	require.Equal(t, 3, tree.Find("x/y/z.md").Depth)
	require.Same(t, tree.Root, tree.Find(""))
}

func TestNodeWalk_CanPrune(t *testing.T) {
	tree := BuildTree([]string{"d/", "d/skip/", "d/skip/x.md", "d/keep.md"})
	var seen []string
	tree.Find("d/").Walk(func(n *Node) bool {
		seen = append(seen, n.Path)
		return n.Name != "skip"
	})
	require.Equal(t, []string{"d/", "d/skip/", "d/keep.md"}, seen)
}
