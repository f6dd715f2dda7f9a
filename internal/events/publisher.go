package events

import (
	"context"
	"log/slog"
)

// Publisher delivers domain events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
}

type logPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher returns a Publisher that records events on the structured log.
func NewLogPublisher(logger *slog.Logger) Publisher {
	return logPublisher{logger: logger}
}

func (p logPublisher) Publish(ctx context.Context, topic string, event any) error {
	p.logger.InfoContext(ctx, "event published", "topic", topic, "event", event)
	return nil
}
