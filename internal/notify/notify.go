// Package notify announces finished publish runs on NATS.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/publisher/internal/config"
	"git.home.luguber.info/inful/publisher/internal/logfields"
)

// Notifier publishes a run report.
type Notifier interface {
	Notify(ctx context.Context, runID string, report any) error
	Close() error
}

// Noop discards every report; it is used when no NATS server is configured.
type Noop struct{}

func (Noop) Notify(context.Context, string, any) error { return nil }
func (Noop) Close() error                              { return nil }

// conn is the subset of *nats.Conn the notifier needs.
type conn interface {
	Publish(subj string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// Envelope is the message body sent for every run.
type Envelope struct {
	RunID  string    `json:"run_id"`
	SentAt time.Time `json:"sent_at"`
	Report any       `json:"report"`
}

// NATSNotifier publishes JSON envelopes to a fixed subject.
type NATSNotifier struct {
	conn    conn
	subject string
	logger  *slog.Logger
}

// New returns a NATS notifier when cfg configures one, and Noop otherwise.
func New(cfg config.NotifyConfig, logger *slog.Logger) (Notifier, error) {
	if cfg.NATS == nil || cfg.NATS.URL == "" {
		return Noop{}, nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	nc, err := nats.Connect(cfg.NATS.URL,
		nats.Name("publisher"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(3),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Debug("NATS notifier connected", slog.String("url", cfg.NATS.URL), slog.String("subject", cfg.NATS.Subject))
	return newNATSNotifier(nc, cfg.NATS.Subject, logger), nil
}

func newNATSNotifier(c conn, subject string, logger *slog.Logger) *NATSNotifier {
	return &NATSNotifier{conn: c, subject: subject, logger: logger}
}

// Encode builds the message body for a run.
func Encode(runID string, report any, now time.Time) ([]byte, error) {
	data, err := json.Marshal(Envelope{RunID: runID, SentAt: now.UTC(), Report: report})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

// Notify publishes the report and waits for the server to acknowledge the flush.
func (n *NATSNotifier) Notify(ctx context.Context, runID string, report any) error {
	data, err := Encode(runID, report, time.Now())
	if err != nil {
		return err
	}
	if err := n.conn.Publish(n.subject, data); err != nil {
		return fmt.Errorf("failed to publish report: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := n.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	n.logger.Debug("Published run report",
		logfields.RunID(runID),
		slog.String("subject", n.subject),
		logfields.Size(humanize.Bytes(uint64(len(data)))))
	return nil
}

// Close closes the connection.
func (n *NATSNotifier) Close() error {
	if n.conn != nil {
		n.conn.Close()
	}
	return nil
}
