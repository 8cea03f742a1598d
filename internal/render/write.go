package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/publisher/internal/logfields"
	rerrors "git.home.luguber.info/inful/publisher/internal/render/errors"
	"git.home.luguber.info/inful/publisher/internal/templates"
)

// unit is one template x page combination.
type unit struct {
	template string
	// name is the write name relative to the destination directory.
	name string
	page int
	// produce renders the file content.
	produce func() ([]byte, error)
}

// loadTemplate compiles a template, recording and logging a failure.
func (e *Env) loadTemplate(renderer, path string, wrap bool, res *Result) (*templates.Template, bool) {
	tmpl, err := e.Engine.Load(path, wrap)
	if err != nil {
		e.logger().Error("Template unavailable",
			logfields.Renderer(renderer), logfields.Template(path), logfields.Error(err))
		res.fail(err)
		return nil, false
	}
	return tmpl, true
}

// write stores content at dest/name, creating parent directories once.
func (e *Env) write(name string, content []byte) error {
	target := e.Resolver.DestPath(name)
	if err := e.Dirs.Ensure(filepath.Dir(target)); err != nil {
		return fmt.Errorf("%w: %w", rerrors.ErrWrite, err)
	}
	if err := os.WriteFile(target, content, 0o644); err != nil { //nolint:gosec // published site content is world readable
		return fmt.Errorf("%w: %s: %w", rerrors.ErrWrite, name, err)
	}
	return nil
}

// batch renders and writes units concurrently, bounded by Env.Concurrency.
// A failing unit is logged and recorded; it never cancels its siblings.
func (e *Env) batch(ctx context.Context, renderer string, units []unit) Result {
	var (
		mu  sync.Mutex
		res Result
	)
	limit := e.Concurrency
	if limit < 1 {
		limit = 1
	}
	g := new(errgroup.Group)
	g.SetLimit(limit)

	for _, u := range units {
		if err := ctx.Err(); err != nil {
			mu.Lock()
			res.fail(err)
			mu.Unlock()
			break
		}
		g.Go(func() error {
			log := e.logger().With(
				logfields.Renderer(renderer),
				logfields.Template(u.template),
				logfields.Artifact(u.name))
			if u.page > 0 {
				log = log.With(logfields.Page(u.page))
			}

			content, err := u.produce()
			if err == nil {
				err = e.write(u.name, content)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Error("Artifact failed", logfields.Error(err))
				res.fail(err)
				return nil
			}
			log.Debug("Wrote artifact", logfields.Size(humanize.Bytes(uint64(len(content)))))
			res.Written = append(res.Written, Artifact{Template: u.template, Path: u.name, Bytes: int64(len(content))})
			return nil
		})
	}
	_ = g.Wait()
	return res
}
