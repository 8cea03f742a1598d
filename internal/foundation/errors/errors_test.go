package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

var errSentinel = stderrors.New("sentinel")

func TestClassifiedError_BuilderAndAccessors(t *testing.T) {
	err := WrapError(errSentinel, CategoryTemplate, "template read failed").
		Warning().
		WithContext("template", "list.tmpl").
		Build()

	require.Equal(t, CategoryTemplate, err.Category())
	require.Equal(t, SeverityWarning, err.Severity())
	require.Equal(t, "template read failed", err.Message())
	require.ErrorIs(t, err, errSentinel)

	tmpl, ok := err.Context().GetString("template")
	require.True(t, ok)
	require.Equal(t, "list.tmpl", tmpl)
	require.Contains(t, err.Error(), "[template:warning]")
}

func TestClassifiedError_FoundThroughWrapping(t *testing.T) {
	inner := IndexError("missing sort key").WithContext("document", "docs/a.md").Build()
	wrapped := fmt.Errorf("build index: %w", inner)

	require.True(t, IsClassified(wrapped))
	require.True(t, HasCategory(wrapped, CategoryIndex))
	require.Equal(t, CategoryIndex, GetCategory(wrapped))
	require.Equal(t, SeverityError, GetSeverity(wrapped))
	require.Equal(t, CategoryInternal, GetCategory(errSentinel))
}

func TestClassifiedError_WithContextDoesNotMutateOriginal(t *testing.T) {
	base := ConfigError("bad config").Build()
	extended := base.WithContext("path", "publisher.yaml")

	_, ok := base.Context().Get("path")
	require.False(t, ok)
	p, ok := extended.Context().GetString("path")
	require.True(t, ok)
	require.Equal(t, "publisher.yaml", p)
	require.True(t, extended.IsFatal())
}

func TestErrorContext_Merge(t *testing.T) {
	a := ErrorContext{"x": 1, "y": 2}
	b := ErrorContext{"y": 3}
	merged := a.Merge(b)
	require.Equal(t, 1, merged["x"])
	require.Equal(t, 3, merged["y"])
	require.Equal(t, 2, a["y"])
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"validation", ValidationError("invalid").Build(), 2},
		{"config", ConfigError("bad").Build(), 7},
		{"render", RenderError("boom").Build(), 11},
		{"store", NewError(CategoryStore, "db").Build(), 8},
		{"internal", InternalError("bug").Build(), 10},
		{"unclassified", errSentinel, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, adapter.ExitCodeFor(tc.err))
		})
	}
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var logs, out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	adapter := NewCLIErrorAdapter(false, logger)

	code := adapter.Report(&out, WrapError(errSentinel, CategoryConfig, "load config").Fatal().Build())

	require.Equal(t, 7, code)
	require.Equal(t, "Error: load config: sentinel\n", out.String())
	require.Contains(t, logs.String(), "category=config")
}
