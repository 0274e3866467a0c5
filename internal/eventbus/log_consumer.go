package eventbus

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/event"
)

// LogConsumer logs all domain events for observability.
type LogConsumer struct {
	log *logrus.Entry
}

func NewLogConsumer() *LogConsumer {
	return &LogConsumer{log: logrus.WithField("component", "eventbus")}
}

func (c *LogConsumer) HandleEvent(_ context.Context, evt event.DomainEvent) error {
	c.log.WithFields(logrus.Fields{
		"event_type": evt.EventType,
		"event_id":   evt.ID,
		"form_id":    evt.FormID,
	}).Info(evt.Summary)
	return nil
}
