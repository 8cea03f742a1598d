// Package outline renders the source tree as a Markdown table of contents
// (SUMMARY.md) and reads it back for the TOC artifact.
package outline

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/publisher/internal/index"
)

// ErrRootNotFound indicates the source root key is not part of the file tree.
var ErrRootNotFound = errors.New("outline root not found in file tree")

const header = "# Summary\n\n"

// BuildOutline walks the tree below sourceRootKey (e.g. "docs/") and emits one
// heading per group and one linked heading per leaf, whatever its type. Entries
// at the top level of the source root get one "#", and every nesting level adds one.
func BuildOutline(tree *index.FileTree, sourceRootKey string) (string, error) {
	root := tree.Find(sourceRootKey)
	if root == nil {
		return "", fmt.Errorf("%w: %s", ErrRootNotFound, sourceRootKey)
	}
	var b strings.Builder
	b.WriteString(header)
	writeChildren(&b, root, root.Path, 1)
	return b.String(), nil
}

func writeChildren(b *strings.Builder, n *index.Node, rootPath string, level int) {
	for _, c := range n.Children {
		hashes := strings.Repeat("#", level)
		if c.IsGroup() {
			fmt.Fprintf(b, "%s %s\n\n", hashes, Title(c.Name))
			writeChildren(b, c, rootPath, level+1)
			continue
		}
		name := strings.TrimSuffix(c.Name, path.Ext(c.Name))
		link := "./" + strings.TrimPrefix(c.Path, rootPath)
		fmt.Fprintf(b, "%s [%s](%s)\n\n", hashes, Title(name), link)
	}
}

// Title turns a file or directory name into heading text: underscores become
// spaces and every word is capitalized.
func Title(name string) string {
	return cases.Title(language.English, cases.NoLower).String(strings.ReplaceAll(name, "_", " "))
}

// SummaryPath is the location of the outline inside the source directory.
func SummaryPath(sourceDir string) string {
	return filepath.Join(sourceDir, index.SummaryFile)
}

// Write stores the outline at sourceDir/SUMMARY.md.
func Write(sourceDir, text string) error {
	if err := os.WriteFile(SummaryPath(sourceDir), []byte(text), 0o644); err != nil { //nolint:gosec // published content
		return fmt.Errorf("write outline: %w", err)
	}
	return nil
}

// Read loads sourceDir/SUMMARY.md, which may have been edited since it was written.
func Read(sourceDir string) (string, error) {
	data, err := os.ReadFile(SummaryPath(sourceDir))
	if err != nil {
		return "", fmt.Errorf("read outline: %w", err)
	}
	return string(data), nil
}
