package model

import "time"

// UncategorizedFolder is the sentinel bucket for notes saved without a folder.
const UncategorizedFolder = "uncategorized"

type Folder struct {
	ID        string    `firestore:"-" json:"id"`
	OwnerID   string    `firestore:"userId" json:"userId"`
	Name      string    `firestore:"name" json:"name"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

type Note struct {
	ID        string    `firestore:"-" json:"id"`
	OwnerID   string    `firestore:"userId" json:"userId"`
	FolderID  string    `firestore:"folderId" json:"folderId"`
	Title     string    `firestore:"title" json:"title"`
	Content   string    `firestore:"content" json:"content"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
