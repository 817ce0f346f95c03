package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcher_DeliversToSubscribersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var got []string

	d.Subscribe(EventContentChanged, func(_ context.Context, e Event) error {
		got = append(got, "first:"+string(e.Payload.(ContentChangedPayload).Kind))
		return errors.New("boom")
	})
	d.Subscribe(EventContentChanged, func(_ context.Context, e Event) error {
		got = append(got, "second")
		return nil
	})
	d.Subscribe(EventContactReceived, func(context.Context, Event) error {
		got = append(got, "unrelated")
		return nil
	})

	event := New(EventContentChanged, "user-1", ContentChangedPayload{Kind: KindProjects, Action: ActionCreated})
	if err := d.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(got) != 2 || got[0] != "first:projects" || got[1] != "second" {
		t.Fatalf("unexpected deliveries %v", got)
	}
	if event.ID == "" || event.Timestamp.IsZero() {
		t.Fatalf("expected id and timestamp to be stamped, got %+v", event)
	}
}
