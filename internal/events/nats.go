package events

import (
	"context"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// NATSPublisher publishes each event on "<prefix>.<event type>".
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
	log    *zap.Logger
}

func NewNATSPublisher(conn *nats.Conn, prefix string, log *zap.Logger) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: prefix, log: log}
}

func (p *NATSPublisher) Subject(eventType string) string {
	if p.prefix == "" {
		return eventType
	}
	return p.prefix + "." + eventType
}

func (p *NATSPublisher) Publish(_ context.Context, event Event) {
	data, err := event.Marshal()
	if err != nil {
		p.log.Warn("events: failed to marshal event", zap.String("event", event.Event), zap.Error(err))
		return
	}
	subject := p.Subject(event.Event)
	if err := p.conn.Publish(subject, data); err != nil {
		p.log.Warn("events: nats publish failed (non-fatal)",
			zap.String("subject", subject),
			zap.Error(err))
		return
	}
	p.log.Debug("events: published to nats", zap.String("subject", subject))
}
