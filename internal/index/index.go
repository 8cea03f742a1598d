// Package index discovers source documents, derives their sort keys and
// answers ordered, filtered selections over them.
package index

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"git.home.luguber.info/inful/publisher/internal/config"
	ierrors "git.home.luguber.info/inful/publisher/internal/index/errors"
	"git.home.luguber.info/inful/publisher/internal/logfields"
)

// Options configures a single index build.
type Options struct {
	Prefix    string
	Source    string
	Dest      string
	Exclude   []string
	Order     config.OrderConfig
	OnMissing config.MissingPolicy
	// FrontMatter false selects pure filesystem mode: files are discovered but
	// no document is parsed or ordered.
	FrontMatter bool
	Logger      *slog.Logger
}

// OptionsFromConfig derives build options from the resolved configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Prefix:      cfg.Prefix,
		Source:      cfg.Source,
		Dest:        cfg.Dest,
		Exclude:     cfg.Exclude,
		Order:       cfg.Output.IndexOrder(),
		OnMissing:   cfg.Output.OnMissingSortKey,
		FrontMatter: cfg.Output.UsesFrontMatter(),
	}
}

// Skipped records a document left out of the index and why.
type Skipped struct {
	Path string
	Err  error
}

// Index is the read-only result of one build.
type Index struct {
	prefix  string
	source  string
	order   config.OrderConfig
	files   []string
	docs    []*Document
	skipped []Skipped
	built   bool
	tree    *FileTree
	logger  *slog.Logger
}

// Build discovers prefix/source and indexes every Markdown document.
//
// Documents that cannot be parsed, or whose sort key is invalid, are skipped
// with a warning. A missing sort key is skipped too under MissingSkip; under
// MissingAbort Build returns the index without documents and an error wrapping
// ErrMissingSortKey, so file listing and the tree stay usable.
func Build(ctx context.Context, opts Options) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	files, err := Discover(opts.Prefix, opts.Source, NewMatcher(opts.Dest, opts.Exclude))
	if err != nil {
		return nil, err
	}

	idx := &Index{
		prefix: opts.Prefix,
		source: opts.Source,
		order:  opts.Order,
		files:  files,
		tree:   BuildTree(files),
		logger: logger,
	}
	if !opts.FrontMatter {
		logger.Debug("Front matter indexing disabled", logfields.Count(len(files)))
		return idx, nil
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !IsMarkdown(f) {
			continue
		}
		doc, err := LoadDocument(opts.Prefix, f)
		if err == nil {
			doc.SortKey, err = DeriveSortKey(f, doc.Fields, opts.Order)
		}
		if err != nil {
			if errors.Is(err, ierrors.ErrMissingSortKey) && opts.OnMissing == config.MissingAbort {
				logger.Error("Index build aborted", logfields.Document(f), logfields.Error(err))
				idx.skipped = append(idx.skipped, Skipped{Path: f, Err: err})
				idx.docs = nil
				return idx, err
			}
			logger.Warn("Skipping document", logfields.Document(f), logfields.Error(err))
			idx.skipped = append(idx.skipped, Skipped{Path: f, Err: err})
			continue
		}
		idx.docs = append(idx.docs, doc)
	}
	idx.built = true
	logger.Info("Document index built",
		logfields.Count(len(idx.docs)),
		slog.Int("skipped", len(idx.skipped)),
		slog.Int("files", len(files)))
	return idx, nil
}

// Built reports whether documents were parsed and keyed.
func (i *Index) Built() bool { return i.built }

// Prefix returns the root all paths are relative to.
func (i *Index) Prefix() string { return i.prefix }

// Source returns the source directory relative to the prefix.
func (i *Index) Source() string { return i.source }

// SourceRootKey is the FileTree key of the source root, e.g. "docs/".
func (i *Index) SourceRootKey() string { return i.source + "/" }

// Files returns the flat list of discovered paths, including directories and assets.
func (i *Index) Files() []string { return slices.Clone(i.files) }

// Tree returns the hierarchical view of Files.
func (i *Index) Tree() *FileTree { return i.tree }

// Skipped returns the documents excluded from ordering.
func (i *Index) Skipped() []Skipped { return slices.Clone(i.skipped) }

// Len returns the number of indexed documents.
func (i *Index) Len() int { return len(i.docs) }

// Documents returns indexed documents in discovery order.
func (i *Index) Documents() []*Document { return slices.Clone(i.docs) }

// Ordered returns documents stably sorted by sort key in the given direction;
// ties keep discovery order. An empty direction uses the index direction.
func (i *Index) Ordered(direction config.Direction) []*Document {
	if direction == "" {
		direction = i.order.Direction
	}
	out := slices.Clone(i.docs)
	slices.SortStableFunc(out, func(a, b *Document) int {
		c := a.SortKey.Compare(b.SortKey)
		if direction == config.DirectionDesc {
			c = -c
		}
		return c
	})
	return out
}
