package services

import (
	"context"
	"errors"
	"testing"

	"taskcal/model"
)

func TestGroupByFolder(t *testing.T) {
	notes := []model.Note{
		{ID: "n1", FolderID: "work"},
		{ID: "n2", FolderID: "home"},
		{ID: "n3", FolderID: "work"},
		{ID: "n4"},
		{ID: "n5", FolderID: model.UncategorizedFolder},
	}

	groups := GroupByFolder(notes)

	if len(groups) != 3 {
		t.Fatalf("got %d buckets, want 3: %v", len(groups), groups)
	}
	if got := groups["work"]; len(got) != 2 || got[0].ID != "n1" || got[1].ID != "n3" {
		t.Errorf("work bucket wrong: %v", got)
	}
	if got := groups[model.UncategorizedFolder]; len(got) != 2 {
		t.Errorf("uncategorized bucket should collect folderless notes, got %v", got)
	}
}

func TestGroupByFolderEmpty(t *testing.T) {
	if groups := GroupByFolder(nil); len(groups) != 0 {
		t.Fatalf("empty input produced buckets: %v", groups)
	}
}

func TestCascadeDeleteRemovesNotesThenFolder(t *testing.T) {
	var deletedNotes []string
	folderDeleted := false

	err := cascadeDelete(context.Background(), []string{"n1", "n2", "n3"}, "f1",
		func(_ context.Context, id string) error {
			deletedNotes = append(deletedNotes, id)
			return nil
		},
		func(_ context.Context, id string) error {
			if len(deletedNotes) != 3 {
				t.Errorf("folder deleted after only %d notes", len(deletedNotes))
			}
			folderDeleted = true
			return nil
		})
	if err != nil {
		t.Fatalf("cascadeDelete: %v", err)
	}
	if len(deletedNotes) != 3 || !folderDeleted {
		t.Fatalf("deleted notes %v, folder deleted %v", deletedNotes, folderDeleted)
	}
}

func TestCascadeDeleteShortCircuits(t *testing.T) {
	var attempts []string
	folderDeleted := false

	err := cascadeDelete(context.Background(), []string{"n1", "n2", "n3"}, "f1",
		func(_ context.Context, id string) error {
			attempts = append(attempts, id)
			if id == "n2" {
				return errors.New("store rejected the delete")
			}
			return nil
		},
		func(_ context.Context, _ string) error {
			folderDeleted = true
			return nil
		})

	if err == nil {
		t.Fatal("expected an error from the failed note delete")
	}
	if !errors.Is(err, model.ErrRemoteWrite) {
		t.Errorf("error should wrap ErrRemoteWrite, got %v", err)
	}
	if len(attempts) != 2 {
		t.Errorf("got %d delete attempts, want 2 (stop at the failure)", len(attempts))
	}
	if folderDeleted {
		t.Error("folder was deleted despite a failed note delete")
	}
}
