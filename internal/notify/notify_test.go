package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/publisher/internal/config"
)

type fakeConn struct {
	subject    string
	data       []byte
	publishErr error
	flushed    bool
	closed     bool
}

func (f *fakeConn) Publish(subj string, data []byte) error {
	f.subject = subj
	f.data = data
	return f.publishErr
}

func (f *fakeConn) FlushWithContext(context.Context) error {
	f.flushed = true
	return nil
}

func (f *fakeConn) Close() { f.closed = true }

func TestNewWithoutNATSIsNoop(t *testing.T) {
	n, err := New(config.NotifyConfig{}, nil)
	require.NoError(t, err)
	require.IsType(t, Noop{}, n)
	require.NoError(t, n.Notify(context.Background(), "run", map[string]int{"a": 1}))
	require.NoError(t, n.Close())
}

func TestEncodeEnvelope(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	data, err := Encode("abc", map[string]int{"written": 3}, now)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, "abc", got["run_id"])
	require.Equal(t, "2024-05-01T10:00:00Z", got["sent_at"])
	require.Equal(t, map[string]any{"written": float64(3)}, got["report"])
}

func TestNATSNotifierPublishes(t *testing.T) {
	fc := &fakeConn{}
	n := newNATSNotifier(fc, "publisher.runs", slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, n.Notify(context.Background(), "run-7", map[string]string{"status": "ok"}))
	require.Equal(t, "publisher.runs", fc.subject)
	require.True(t, fc.flushed)
	require.Contains(t, string(fc.data), `"run_id":"run-7"`)

	require.NoError(t, n.Close())
	require.True(t, fc.closed)
}

func TestNATSNotifierPublishError(t *testing.T) {
	fc := &fakeConn{publishErr: errors.New("boom")}
	n := newNATSNotifier(fc, "s", slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := n.Notify(context.Background(), "run", nil)
	require.ErrorContains(t, err, "boom")
	require.False(t, fc.flushed)
}
