// Package events publishes completed quotes to NATS so downstream
// consumers (CRM, analytics) can react. The publisher is optional:
// a nil *Publisher silently drops events.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectQuoteCreated carries one event per completed quotation.
const SubjectQuoteCreated = "quotebot.quote.created"

// QuoteCreated is the wire payload for a completed quotation.
type QuoteCreated struct {
	SessionID     string    `json:"session_id"`
	Product       string    `json:"product"`
	Specification string    `json:"specification"`
	QuantityKg    int       `json:"quantity_kg"`
	Grade         string    `json:"grade"`
	City          string    `json:"city"`
	Total         string    `json:"total"`
	Currency      string    `json:"currency"`
	Timestamp     time.Time `json:"timestamp"`
}

type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewPublisher(url, token string, logger *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: nc, logger: logger}, nil
}

// PublishQuoteCreated emits the event. Losing an event never fails the
// conversation; errors are logged and swallowed by callers.
func (p *Publisher) PublishQuoteCreated(evt QuoteCreated) error {
	if p == nil {
		return nil
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal quote event: %w", err)
	}
	if err := p.conn.Publish(SubjectQuoteCreated, payload); err != nil {
		return fmt.Errorf("publish %s: %w", SubjectQuoteCreated, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p != nil {
		p.conn.Close()
	}
}
