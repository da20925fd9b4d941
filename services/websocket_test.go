package services

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

// The subscription registry can be exercised without a live store: an
// invalid tuple makes the feed fail before it ever queries Firestore, and
// the failure surfaces as a single error frame.

func newTestClient() *StreamClient {
	return NewStreamClient(nil, NewFeed(nil, zap.NewNop()), "u1", zap.NewNop())
}

func waitFrame(t *testing.T, c *StreamClient) Frame {
	t.Helper()
	select {
	case frame := <-c.send:
		return frame
	case <-time.After(time.Second):
		t.Fatal("no frame delivered")
		return Frame{}
	}
}

func assertNoFrame(t *testing.T, c *StreamClient) {
	t.Helper()
	select {
	case frame := <-c.send:
		t.Fatalf("unexpected frame: %+v", frame)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribeRejectsUnknownCollection(t *testing.T) {
	client := newTestClient()
	defer client.Close()

	client.Subscribe("bogus", "")

	frame := waitFrame(t, client)
	if frame.Type != "error" || frame.Collection != "bogus" {
		t.Fatalf("frame = %+v, want error frame for bogus", frame)
	}
}

func TestSubscribeRejectsStatusOnNonTasks(t *testing.T) {
	client := newTestClient()
	defer client.Close()

	client.Subscribe("folders", "active")

	frame := waitFrame(t, client)
	if frame.Type != "error" {
		t.Fatalf("frame = %+v, want error frame", frame)
	}
}

func TestDuplicateSubscribeIgnored(t *testing.T) {
	client := newTestClient()
	defer client.Close()

	client.Subscribe("bogus", "")
	waitFrame(t, client)

	client.Subscribe("bogus", "")
	assertNoFrame(t, client)
}

func TestResubscribeAfterUnsubscribe(t *testing.T) {
	client := newTestClient()
	defer client.Close()

	client.Subscribe("bogus", "")
	waitFrame(t, client)

	client.Unsubscribe("bogus", "")
	client.Subscribe("bogus", "")

	frame := waitFrame(t, client)
	if frame.Type != "error" {
		t.Fatalf("resubscribe delivered %+v, want error frame", frame)
	}
}

func TestCloseIsIdempotentAndUnblocksDeliver(t *testing.T) {
	client := newTestClient()

	client.Close()
	client.Close()

	done := make(chan struct{})
	go func() {
		client.deliver(Frame{Type: "snapshot"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("deliver blocked after Close")
	}
}
