package publish

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/docversions/internal/errors"
	"git.home.luguber.info/inful/docversions/internal/logfields"
	"git.home.luguber.info/inful/docversions/internal/observability"
	"git.home.luguber.info/inful/docversions/internal/retry"
)

// Notifier announces a finished run.
type Notifier interface {
	Notify(ctx context.Context, report any) error
}

// NATSNotifier publishes the JSON encoded report on a NATS subject. It
// connects for each notification.
type NATSNotifier struct {
	URL     string
	Subject string
	Timeout time.Duration
	Retry   retry.Policy
}

// NewNATSNotifier returns a notifier for url and subject.
func NewNATSNotifier(url, subject string) *NATSNotifier {
	return &NATSNotifier{URL: url, Subject: subject, Timeout: 5 * time.Second, Retry: retry.DefaultPolicy()}
}

// Notify publishes report and waits for the server to acknowledge the flush.
// Network failures are retried according to n.Retry.
func (n *NATSNotifier) Notify(ctx context.Context, report any) error {
	data, err := json.Marshal(report)
	if err != nil {
		return errors.InternalError("failed to marshal report", err)
	}

	err = n.Retry.Do(ctx, func(attempt int) error {
		if attempt > 0 {
			observability.WarnContext(ctx, "Retrying run report notification",
				logfields.Subject(n.Subject), slog.Int("attempt", attempt))
		}
		return n.publish(ctx, data)
	})
	if err != nil {
		return err
	}

	observability.InfoContext(ctx, "Published run report", logfields.Subject(n.Subject))
	return nil
}

func (n *NATSNotifier) publish(ctx context.Context, data []byte) error {
	conn, err := nats.Connect(n.URL,
		nats.Name("docversions"),
		nats.Timeout(n.Timeout),
		nats.MaxReconnects(0))
	if err != nil {
		return errors.WrapError(err, errors.CategoryNetwork, "failed to connect to NATS").
			WithContext("url", n.URL).Build()
	}
	defer conn.Close()

	if err := conn.Publish(n.Subject, data); err != nil {
		return errors.WrapError(err, errors.CategoryNetwork, "failed to publish run report").
			WithContext("subject", n.Subject).Build()
	}

	flushCtx, cancel := context.WithTimeout(ctx, n.Timeout)
	defer cancel()
	if err := conn.FlushWithContext(flushCtx); err != nil {
		return errors.WrapError(err, errors.CategoryNetwork, "failed to flush NATS connection").Build()
	}
	return nil
}
