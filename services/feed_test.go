package services

import (
	"context"
	"testing"
	"time"

	"taskcal/model"

	"go.uber.org/zap"
)

func TestNormalizeBatchTasks(t *testing.T) {
	docs := []RawDocument{
		{ID: "t1", Data: map[string]interface{}{
			"userId": "u1",
			"title":  "Pay rent",
			"dates":  []interface{}{time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)},
		}},
		{ID: "t2", Data: map[string]interface{}{
			"userId": "u1",
			"title":  "broken",
			"dates":  []interface{}{"not-a-date"},
		}},
	}

	got := NormalizeBatch("tasks", docs, zap.NewNop())

	tasks, ok := got.([]model.Task)
	if !ok {
		t.Fatalf("batch type = %T, want []model.Task", got)
	}
	if len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Fatalf("undecodable document should be skipped, got %v", tasks)
	}
}

func TestNormalizeBatchNotifications(t *testing.T) {
	docs := []RawDocument{
		{ID: "n1", Data: map[string]interface{}{"userId": "u1", "title": "hi"}},
		{ID: "n2", Data: map[string]interface{}{"userId": "u1", "read": true}},
	}

	got := NormalizeBatch("notifications", docs, zap.NewNop())

	notifications, ok := got.([]model.Notification)
	if !ok {
		t.Fatalf("batch type = %T, want []model.Notification", got)
	}
	if len(notifications) != 2 {
		t.Fatalf("got %d notifications, want 2", len(notifications))
	}
	if notifications[0].Read || !notifications[1].Read {
		t.Errorf("read defaults wrong: %v", notifications)
	}
}

func TestNormalizeBatchUnknownCollection(t *testing.T) {
	if got := NormalizeBatch("bogus", nil, zap.NewNop()); got != nil {
		t.Fatalf("unknown collection produced %v", got)
	}
}

func TestSendIfActiveDropsAfterCancel(t *testing.T) {
	delivered := 0
	send := func(Frame) { delivered++ }

	ctx, cancel := context.WithCancel(context.Background())
	if !sendIfActive(ctx, send, Frame{Type: "snapshot"}) {
		t.Fatal("live subscription refused to deliver")
	}

	cancel()
	if sendIfActive(ctx, send, Frame{Type: "snapshot"}) {
		t.Fatal("released subscription still delivered")
	}
	if delivered != 1 {
		t.Fatalf("delivered %d frames, want 1", delivered)
	}
}

func TestNormalizeBatchEmptySnapshotReplaces(t *testing.T) {
	// An empty snapshot is a legitimate full replacement, not an error: the
	// frame must carry an empty slice rather than nil.
	got := NormalizeBatch("notes", nil, zap.NewNop())
	notes, ok := got.([]model.Note)
	if !ok || notes == nil {
		t.Fatalf("empty batch should be an empty slice, got %T %v", got, got)
	}
}
