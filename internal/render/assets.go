package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	rerrors "git.home.luguber.info/inful/publisher/internal/render/errors"
)

// ServeFile is copied from the prefix to the destination root when present.
const ServeFile = "serve.json"

// AssetsRenderer copies every configured asset, file or directory, verbatim to
// dest/<basename>.
type AssetsRenderer struct {
	assets []string
}

func NewAssetsRenderer(assets []string) *AssetsRenderer { return &AssetsRenderer{assets: assets} }

func (AssetsRenderer) Name() string { return "assets" }

func (a AssetsRenderer) Render(ctx context.Context, env *Env) Result {
	var res Result
	copyOne := func(src, name string) {
		n, err := copyTree(src, env.Resolver.DestPath(name))
		if err != nil {
			res.fail(fmt.Errorf("%w: copy %s: %w", rerrors.ErrWrite, name, err))
			return
		}
		res.Written = append(res.Written, Artifact{Path: name, Bytes: n})
	}
	for _, asset := range a.assets {
		if ctx.Err() != nil {
			res.fail(ctx.Err())
			return res
		}
		copyOne(env.Config.Abs(asset), filepath.Base(filepath.FromSlash(asset)))
	}

	serve := env.Config.Abs(ServeFile)
	if _, err := os.Stat(serve); err == nil {
		copyOne(serve, ServeFile)
	} else if !errors.Is(err, fs.ErrNotExist) {
		res.fail(err)
	}
	return res
}

// copyTree copies a file or directory recursively and returns the bytes copied.
func copyTree(src, dst string) (int64, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return copyFile(src, dst, info.Mode())
	}
	if err := os.MkdirAll(dst, 0o750); err != nil {
		return 0, err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, entry := range entries {
		n, err := copyTree(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name()))
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func copyFile(src, dst string, mode fs.FileMode) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return 0, err
	}
	in, err := os.Open(src) //nolint:gosec // asset paths come from the configuration
	if err != nil {
		return 0, err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}
