package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/event"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := New(8)

	var mu sync.Mutex
	var seen []string
	record := func(name string) Handler {
		return HandlerFunc(func(_ context.Context, evt event.DomainEvent) error {
			mu.Lock()
			seen = append(seen, name+":"+evt.EventType)
			mu.Unlock()
			return nil
		})
	}
	bus.Subscribe("first", record("first"))
	bus.Subscribe("second", record("second"))

	ctx, cancel := context.WithCancel(t.Context())
	bus.Start(ctx)

	bus.Publish(ctx, event.NewFormRendered(event.FormRenderedPayload{FormID: "ACCT_LIST", Locale: "en"}))
	bus.Publish(ctx, event.NewFormStateCleared(event.FormStateClearedPayload{FormID: "ACCT_LIST"}))

	cancel()
	bus.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{
		"first:form_rendered", "second:form_rendered",
		"first:form_state_cleared", "second:form_state_cleared",
	}, seen)
}

func TestBusDrainsOnShutdown(t *testing.T) {
	bus := New(8)

	done := make(chan event.DomainEvent, 8)
	bus.Subscribe("drain", HandlerFunc(func(_ context.Context, evt event.DomainEvent) error {
		done <- evt
		return nil
	}))

	ctx, cancel := context.WithCancel(t.Context())
	bus.Publish(ctx, event.NewDesignSaved(event.DesignSavedPayload{FormID: "ACCT_LIST", Bytes: 42}))

	// Cancel before Start so the event sits in the buffer; the consumer must
	// still drain it on the way out.
	cancel()
	bus.Start(ctx)
	bus.Stop()

	select {
	case evt := <-done:
		assert.Equal(t, "design_saved", evt.EventType)
	case <-time.After(time.Second):
		t.Fatal("buffered event was not drained on shutdown")
	}
}

func TestBusFullBufferDropsWithoutBlocking(t *testing.T) {
	bus := New(1)

	ctx := t.Context()
	bus.Publish(ctx, event.NewDesignDeleted(event.DesignDeletedPayload{FormID: "A"}))

	finished := make(chan struct{})
	go func() {
		bus.Publish(ctx, event.NewDesignDeleted(event.DesignDeletedPayload{FormID: "B"}))
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full buffer")
	}
}

func TestEventConstructors(t *testing.T) {
	evt := event.NewSearchExecuted(event.SearchExecutedPayload{
		FormID: "ACCT_LIST", Command: "SimpleSearchAccount", PageIndex: 2, ResultRows: 10,
	})
	require.NotEmpty(t, evt.ID)
	assert.Equal(t, "search_executed", evt.EventType)
	assert.Equal(t, "ACCT_LIST", evt.FormID)
	assert.Contains(t, evt.Summary, "10 rows")
	assert.False(t, evt.OccurredAt.IsZero())

	stale := event.NewSearchExecuted(event.SearchExecutedPayload{FormID: "ACCT_LIST", Discarded: true})
	assert.Contains(t, stale.Summary, "discarded")
}
