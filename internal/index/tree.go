package index

import (
	"path"
	"strings"
)

// Node is one entry of the FileTree. Groups (directories) have a trailing "/"
// in Path and may have Children; leaves are files.
type Node struct {
	Name     string
	Path     string
	Depth    int
	Children []*Node
}

// IsGroup reports whether n is a directory.
func (n *Node) IsGroup() bool { return strings.HasSuffix(n.Path, "/") }

// FileTree is the hierarchical view of a flat path list. Depth is assigned
// while the tree is built: the synthetic root has depth 0 and every child is
// one deeper than its parent.
type FileTree struct {
	Root  *Node
	byKey map[string]*Node
}

// BuildTree groups slash separated paths (directories ending in "/") into a
// tree. Children keep the order of the input list.
func BuildTree(files []string) *FileTree {
	t := &FileTree{Root: &Node{}, byKey: map[string]*Node{}}
	for _, f := range files {
		if f == "" || f == "./" {
			continue
		}
		if strings.HasSuffix(f, "/") {
			t.group(f)
			continue
		}
		if _, seen := t.byKey[f]; seen {
			continue
		}
		parent := t.group(parentKey(f))
		leaf := &Node{Name: path.Base(f), Path: f, Depth: parent.Depth + 1}
		parent.Children = append(parent.Children, leaf)
		t.byKey[f] = leaf
	}
	return t
}

// Find returns the node stored under key ("docs/" for a group, "docs/a.md" for a leaf).
func (t *FileTree) Find(key string) *Node {
	if key == "" || key == "./" {
		return t.Root
	}
	return t.byKey[key]
}

// group returns the group for key, creating it and its ancestors as needed.
func (t *FileTree) group(key string) *Node {
	if key == "" {
		return t.Root
	}
	if n, ok := t.byKey[key]; ok {
		return n
	}
	parent := t.group(parentKey(key))
	n := &Node{Name: path.Base(strings.TrimSuffix(key, "/")), Path: key, Depth: parent.Depth + 1}
	parent.Children = append(parent.Children, n)
	t.byKey[key] = n
	return n
}

func parentKey(p string) string {
	dir := path.Dir(strings.TrimSuffix(p, "/"))
	if dir == "." || dir == "/" {
		return ""
	}
	return dir + "/"
}

// Walk visits n and its descendants depth first. Returning false from fn skips
// the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
