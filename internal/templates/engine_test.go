package templates

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	rerrors "git.home.luguber.info/inful/publisher/internal/render/errors"
)

func writeTemplate(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
}

func TestEngine_WrapsBodyInLayout(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "layout.tmpl", `<html><title>{{ .title }}</title>{{ template "content" . }}</html>`)
	writeTemplate(t, root, "page.tmpl", `<p>{{ .body }}</p>`)

	e, err := New(Options{Root: root, Layout: "layout.tmpl"})
	require.NoError(t, err)
	require.True(t, e.HasLayout())

	wrapped, err := e.Load("page.tmpl", true)
	require.NoError(t, err)
	out, err := wrapped.Execute(map[string]any{"title": "T", "body": "B"})
	require.NoError(t, err)
	require.Equal(t, "<html><title>T</title><p>B</p></html>", string(out))

	bare, err := e.Load("page.tmpl", false)
	require.NoError(t, err)
	out, err = bare.Execute(map[string]any{"body": "B"})
	require.NoError(t, err)
	require.Equal(t, "<p>B</p>", string(out))
}

func TestEngine_WithoutLayoutNeverWraps(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "page.tmpl", `x={{ .x }}`)
	e, err := New(Options{Root: root})
	require.NoError(t, err)

	tpl, err := e.Load("page.tmpl", true)
	require.NoError(t, err)
	out, err := tpl.Execute(map[string]any{"x": 1})
	require.NoError(t, err)
	require.Equal(t, "x=1", string(out))
}

func TestEngine_Errors(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "bad.tmpl", `{{ .x `)
	writeTemplate(t, root, "fail.tmpl", `{{ index .list 5 }}`)

	_, err := New(Options{Root: root, Layout: "missing.tmpl"})
	require.ErrorIs(t, err, rerrors.ErrTemplateRead)

	e, err := New(Options{Root: root})
	require.NoError(t, err)

	_, err = e.Load("nope.tmpl", false)
	require.ErrorIs(t, err, rerrors.ErrTemplateRead)

	_, err = e.Load("bad.tmpl", false)
	require.ErrorIs(t, err, rerrors.ErrTemplateRender)

	tpl, err := e.Load("fail.tmpl", false)
	require.NoError(t, err)
	_, err = tpl.Execute(map[string]any{"list": []int{1}})
	require.ErrorIs(t, err, rerrors.ErrTemplateRender)
}

func TestEngine_ConcurrentLoadAndExecute(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "layout.tmpl", `[{{ template "content" . }}]`)
	writeTemplate(t, root, "p.tmpl", `{{ .n }}`)
	e, err := New(Options{Root: root, Layout: "layout.tmpl"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tpl, err := e.Load("p.tmpl", true)
			if err != nil {
				t.Error(err)
				return
			}
			out, err := tpl.Execute(map[string]any{"n": i})
			if err != nil {
				t.Error(err)
				return
			}
			if !strings.HasPrefix(string(out), "[") {
				t.Errorf("unexpected output %q", out)
			}
		}(i)
	}
	wg.Wait()
}

func TestHelpers(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	e, err := New(Options{Link: func(s string) string { return "/" + s }, Now: func() time.Time { return fixed }})
	require.NoError(t, err)

	cases := map[string]string{
		`{{ inRange 0 1 3 }}|{{ inRange 3 1 3 }}`:            "true|false",
		`{{ formatRSSDate "2024-01-02" }}`:                   "Tue, 02 Jan 2024 00:00:00 +0000",
		`{{ formatRSSDate "" }}`:                             "Fri, 01 Mar 2024 12:00:00 +0000",
		`{{ formatRSSDate .missing }}`:                       "Fri, 01 Mar 2024 12:00:00 +0000",
		`{{ defaultOr "" "d" }}|{{ defaultOr "v" "d" }}`:     "d|v",
		`{{ first .list }}`:                                  "a",
		`{{ excerpt "<p>one <b>two</b> three four</p>" 2 }}`: "one two…",
		`{{ excerpt "<p>one two</p>" 5 }}`:                   "one two",
		`{{ xml "a < b & c" }}`:                              "a &lt; b &amp; c",
		`{{ outputLink "x" }}`:                               "/x",
	}
	for src, want := range cases {
		tpl, err := e.Compile("t", src, false)
		require.NoError(t, err, src)
		out, err := tpl.Execute(map[string]any{"list": []any{"a", "b"}})
		require.NoError(t, err, src)
		require.Equal(t, want, string(out), src)
	}
}

func TestGuidIsStablePerLink(t *testing.T) {
	require.Equal(t, guid("https://example.com/a"), guid("https://example.com/a"))
	require.NotEqual(t, guid("https://example.com/a"), guid("https://example.com/b"))
}
