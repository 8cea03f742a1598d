package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"git.home.luguber.info/inful/publisher/internal/pipeline"
)

// IndexCmd implements the 'index' command.
type IndexCmd struct {
	JSON  bool `help:"Print documents as JSON"`
	Files bool `help:"Also list every discovered file"`
}

type indexEntry struct {
	SourcePath  string         `json:"source_path"`
	SortKey     string         `json:"sort_key"`
	Fingerprint string         `json:"fingerprint"`
	Size        int            `json:"size"`
	Fields      map[string]any `json:"fields"`
}

func (i *IndexCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	pub := pipeline.New(cfg, pipeline.WithLogger(g.logger()))
	sanityErr := pub.Sanity(context.Background())
	idx := pub.Index()
	if idx == nil {
		return sanityErr
	}

	docs := idx.Ordered("")
	if i.JSON {
		entries := make([]indexEntry, 0, len(docs))
		for _, d := range docs {
			entries = append(entries, indexEntry{
				SourcePath:  d.SourcePath,
				SortKey:     d.SortKey.String(),
				Fingerprint: d.Fingerprint,
				Size:        len(d.Body),
				Fields:      d.Fields.Map(),
			})
		}
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("encode index: %w", err)
		}
		return sanityErr
	}

	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DOCUMENT\tSORT KEY\tSIZE")
	for _, d := range docs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", d.SourcePath, d.SortKey.String(), humanize.Bytes(uint64(len(d.Body))))
	}
	for _, s := range idx.Skipped() {
		_, _ = fmt.Fprintf(tw, "%s\t(skipped: %v)\t\n", s.Path, s.Err)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	_, _ = fmt.Fprintf(g.out(), "%d documents, %d skipped, %d files\n", idx.Len(), len(idx.Skipped()), len(idx.Files()))
	if i.Files {
		for _, f := range idx.Files() {
			_, _ = fmt.Fprintln(g.out(), f)
		}
	}
	return sanityErr
}
