package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"regexp"

	"git.home.luguber.info/inful/publisher/internal/outline"
	rerrors "git.home.luguber.info/inful/publisher/internal/render/errors"
)

// TOCFile is the write name of the table of contents.
const TOCFile = "TOC.html"

var markdownExtPattern = regexp.MustCompile(`(?i)\.md`)

// TOCRenderer re-reads SUMMARY.md from the source directory, so hand edits
// made after the outline was generated are honored. Without the file the
// renderer is skipped.
type TOCRenderer struct{}

func NewTOCRenderer() *TOCRenderer { return &TOCRenderer{} }

func (TOCRenderer) Name() string { return "toc" }

func (t TOCRenderer) Render(ctx context.Context, env *Env) Result {
	text, err := outline.Read(env.Config.SourceDir())
	if errors.Is(err, fs.ErrNotExist) {
		return skipped(t.Name(), rerrors.ErrOutlineMissing.Error())
	}
	var res Result
	if err != nil {
		res.fail(fmt.Errorf("%w: %w", rerrors.ErrTemplateRead, err))
		return res
	}

	html, err := env.Converter.Convert([]byte(markdownExtPattern.ReplaceAllString(text, ".html")))
	if err != nil {
		res.fail(fmt.Errorf("%w: %w", rerrors.ErrTemplateRender, err))
		return res
	}
	tmpl, err := env.Engine.Compile(TOCFile, html, false)
	if err != nil {
		res.fail(err)
		return res
	}
	data := map[string]any{PublisherKey: env.Publisher()}
	res.merge(env.batch(ctx, t.Name(), []unit{{
		template: outline.SummaryPath(env.Config.Source),
		name:     TOCFile,
		produce:  func() ([]byte, error) { return tmpl.Execute(data) },
	}}))
	return res
}
