package realtime

import "testing"

func TestHub_PublishReachesOnlyThatUser(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	defer hub.Close()

	alice := hub.Subscribe("alice")
	bob := hub.Subscribe("bob")

	if !hub.HasSubscribers("alice") {
		t.Fatal("expected alice to have subscribers")
	}
	if hub.HasSubscribers("carol") {
		t.Fatal("expected carol to have no subscribers")
	}

	n := hub.Publish("alice", Message{Collection: CollectionSavedRoutes, Docs: []string{}})
	if n != 1 {
		t.Fatalf("expected 1 delivery, got %d", n)
	}

	msg := <-alice.Messages()
	if msg.Collection != CollectionSavedRoutes {
		t.Errorf("expected %s, got %s", CollectionSavedRoutes, msg.Collection)
	}
	select {
	case msg := <-bob.Messages():
		t.Errorf("bob should not receive alice's snapshot, got %+v", msg)
	default:
	}
}

func TestHub_DropsSlowSubscriber(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe("alice")
	for i := 0; i < defaultBuffer; i++ {
		if n := hub.Publish("alice", Message{Collection: CollectionFavoriteLocations}); n != 1 {
			t.Fatalf("publish %d: expected 1 delivery, got %d", i, n)
		}
	}

	if n := hub.Publish("alice", Message{Collection: CollectionFavoriteLocations}); n != 0 {
		t.Fatalf("expected full subscriber to be dropped, got %d deliveries", n)
	}
	if hub.HasSubscribers("alice") {
		t.Error("expected dropped subscriber to be removed")
	}

	count := 0
	for range sub.Messages() {
		count++
	}
	if count != defaultBuffer {
		t.Errorf("expected %d buffered messages before close, got %d", defaultBuffer, count)
	}
}

func TestHub_UnsubscribeTwice(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe("alice")
	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub)

	if _, ok := <-sub.Messages(); ok {
		t.Error("expected channel to be closed")
	}
	if hub.Publish("alice", Message{}) != 0 {
		t.Error("expected no deliveries after unsubscribe")
	}
}

func TestHub_CloseRejectsNewSubscribers(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	existing := hub.Subscribe("alice")
	hub.Close()
	hub.Close()

	if _, ok := <-existing.Messages(); ok {
		t.Error("expected existing subscriber to be closed")
	}

	late := hub.Subscribe("alice")
	if _, ok := <-late.Messages(); ok {
		t.Error("expected late subscriber to be closed")
	}
	if hub.HasSubscribers("alice") {
		t.Error("expected closed hub to hold no subscribers")
	}
}
