package dto

type CreateFolderRequest struct {
	Name string `json:"name" binding:"required"`
}

type SaveNoteRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	FolderID string `json:"folderId"`
}
