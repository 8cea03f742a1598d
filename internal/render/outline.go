package render

import (
	"context"
	"path"

	"git.home.luguber.info/inful/publisher/internal/index"
	"git.home.luguber.info/inful/publisher/internal/outline"
)

// OutlineRenderer writes SUMMARY.md into the source directory. It must finish
// before the TOC renderer reads the file back.
type OutlineRenderer struct{}

func NewOutlineRenderer() *OutlineRenderer { return &OutlineRenderer{} }

func (OutlineRenderer) Name() string { return "outline" }

func (o OutlineRenderer) Render(_ context.Context, env *Env) Result {
	var res Result
	text, err := outline.BuildOutline(env.Index.Tree(), env.Index.SourceRootKey())
	if err != nil {
		res.fail(err)
		return res
	}
	if err := outline.Write(env.Config.SourceDir(), text); err != nil {
		res.fail(err)
		return res
	}
	res.Written = append(res.Written, Artifact{
		Path:  path.Join(env.Config.Source, index.SummaryFile),
		Bytes: int64(len(text)),
	})
	return res
}
