package event

import "context"

// Publisher sends domain events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, evt DomainEvent)
}

// NopPublisher discards events. Used when no bus is wired, e.g. in tests.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, DomainEvent) {}
