package services

import (
	"testing"
	"time"

	"taskcal/model"
)

func TestNormalizeTaskMixedTimestampShapes(t *testing.T) {
	native := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	data := map[string]interface{}{
		"userId":    "u1",
		"title":     "Pay rent",
		"priority":  "high",
		"dates":     []interface{}{native, "2024-06-01T09:00:00Z"},
		"status":    "active",
		"createdAt": "2024-04-30T12:00:00Z",
	}

	task, err := NormalizeTask("t1", data)
	if err != nil {
		t.Fatalf("NormalizeTask: %v", err)
	}

	if task.ID != "t1" || task.OwnerID != "u1" || task.Title != "Pay rent" {
		t.Errorf("identity fields wrong: %+v", task)
	}
	if len(task.Dates) != 2 {
		t.Fatalf("got %d dates, want 2", len(task.Dates))
	}
	if !task.Dates[0].Equal(native) {
		t.Errorf("native timestamp changed: %v", task.Dates[0])
	}
	if !task.Dates[1].Equal(time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("string timestamp decoded wrong: %v", task.Dates[1])
	}
	if task.CreatedAt.IsZero() {
		t.Error("createdAt not decoded from string")
	}
}

func TestNormalizeTaskDefaults(t *testing.T) {
	task, err := NormalizeTask("t1", map[string]interface{}{
		"userId": "u1",
		"title":  "No extras",
	})
	if err != nil {
		t.Fatalf("NormalizeTask: %v", err)
	}

	if task.Status != model.TaskStatusActive {
		t.Errorf("missing status should default to active, got %q", task.Status)
	}
	if len(task.Dates) != 0 {
		t.Errorf("missing dates should decode empty, got %v", task.Dates)
	}
	if task.CompletedAt != nil || task.DeletedAt != nil {
		t.Error("absent audit timestamps should stay nil")
	}
}

func TestNormalizeTaskUndecodableDate(t *testing.T) {
	_, err := NormalizeTask("t1", map[string]interface{}{
		"userId": "u1",
		"dates":  []interface{}{"yesterday-ish"},
	})
	if err == nil {
		t.Fatal("expected a decode error for an unparseable date")
	}
}

func TestNormalizeNoteFolderDefault(t *testing.T) {
	note, err := NormalizeNote("n1", map[string]interface{}{
		"userId":  "u1",
		"title":   "loose note",
		"content": "body",
	})
	if err != nil {
		t.Fatalf("NormalizeNote: %v", err)
	}
	if note.FolderID != model.UncategorizedFolder {
		t.Errorf("folderId = %q, want %q", note.FolderID, model.UncategorizedFolder)
	}
}

func TestNormalizeNotificationDefaults(t *testing.T) {
	n, err := NormalizeNotification("n1", map[string]interface{}{
		"userId":  "u1",
		"title":   "hello",
		"message": "world",
	})
	if err != nil {
		t.Fatalf("NormalizeNotification: %v", err)
	}
	if n.Read {
		t.Error("missing read should default to false")
	}
	if n.Type != model.NotificationSystem {
		t.Errorf("missing type should default to system, got %q", n.Type)
	}
}

func TestNormalizeNotificationExplicitFields(t *testing.T) {
	created := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)
	n, err := NormalizeNotification("n2", map[string]interface{}{
		"userId":    "u1",
		"type":      model.NotificationTaskCompleted,
		"read":      true,
		"createdAt": created,
	})
	if err != nil {
		t.Fatalf("NormalizeNotification: %v", err)
	}
	if !n.Read || n.Type != model.NotificationTaskCompleted || !n.CreatedAt.Equal(created) {
		t.Errorf("explicit fields lost: %+v", n)
	}
}
