package services

import (
	"context"
	"fmt"

	"taskcal/model"

	"cloud.google.com/go/firestore"
)

// GroupByFolder buckets notes by folder id, collecting notes without a
// folder under the uncategorized sentinel. Per-bucket order follows the
// source slice.
func GroupByFolder(notes []model.Note) map[string][]model.Note {
	groups := make(map[string][]model.Note)
	for _, note := range notes {
		folderID := note.FolderID
		if folderID == "" {
			folderID = model.UncategorizedFolder
		}
		groups[folderID] = append(groups[folderID], note)
	}
	return groups
}

// DeleteFolderCascade removes every note in the folder, then the folder
// itself.
func DeleteFolderCascade(ctx context.Context, fs *firestore.Client, ownerID, folderID string) error {
	docs, err := fs.Collection("notes").
		Where("userId", "==", ownerID).
		Where("folderId", "==", folderID).
		Documents(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("list folder notes: %w: %v", model.ErrRemoteWrite, err)
	}

	noteIDs := make([]string, 0, len(docs))
	for _, doc := range docs {
		noteIDs = append(noteIDs, doc.Ref.ID)
	}

	deleteNote := func(ctx context.Context, id string) error {
		_, err := fs.Collection("notes").Doc(id).Delete(ctx)
		return err
	}
	deleteFolder := func(ctx context.Context, id string) error {
		_, err := fs.Collection("folders").Doc(id).Delete(ctx)
		return err
	}
	return cascadeDelete(ctx, noteIDs, folderID, deleteNote, deleteFolder)
}

// cascadeDelete deletes the notes one by one before touching the folder.
// The store offers no cross-document transaction for this flow, so the loop
// short-circuits on the first failure; the folder survives if any note could
// not be deleted.
func cascadeDelete(ctx context.Context, noteIDs []string, folderID string, deleteNote, deleteFolder func(context.Context, string) error) error {
	for _, id := range noteIDs {
		if err := deleteNote(ctx, id); err != nil {
			return fmt.Errorf("delete note %s: %w: %v", id, model.ErrRemoteWrite, err)
		}
	}

	if err := deleteFolder(ctx, folderID); err != nil {
		return fmt.Errorf("delete folder %s: %w: %v", folderID, model.ErrRemoteWrite, err)
	}
	return nil
}
