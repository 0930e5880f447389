package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/stylehub/internal/events"
	"github.com/Skotchmaster/stylehub/internal/logging"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

// publish never fails the caller; delivery problems are only logged.
func publish(ctx context.Context, p events.Publisher, topic string, ev events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, topic, ev); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed",
			"topic", topic,
			"type", ev.Type,
			"error", err,
		)
	}
}
