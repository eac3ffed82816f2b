package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []string
	d.Subscribe(EventRecordCreated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.Key)
		return nil
	})
	d.Subscribe(EventRecordCreated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.Key)
		return nil
	})
	d.Subscribe(EventRecordDeleted, func(context.Context, Event) error {
		t.Error("deleted handler called for a created event")
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventRecordCreated, Key: "123"}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if len(got) != 2 || got[0] != "first:123" || got[1] != "second:123" {
		t.Fatalf("got %v", got)
	}
}

func TestDispatcherRunsAllHandlersOnError(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	ran := false
	d.Subscribe(EventRecordUpdated, func(context.Context, Event) error { return boom })
	d.Subscribe(EventRecordUpdated, func(context.Context, Event) error {
		ran = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventRecordUpdated})
	if !errors.Is(err, boom) {
		t.Fatalf("Publish error = %v, want boom", err)
	}
	if !ran {
		t.Error("second handler skipped")
	}
}
