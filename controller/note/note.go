package note

import (
	"net/http"
	"strings"
	"time"

	"taskcal/config"
	"taskcal/dto"
	"taskcal/middleware"
	"taskcal/model"
	"taskcal/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func NoteController(router *gin.Engine, fs *firestore.Client, cfg *config.Config, log *zap.Logger) {
	folders := router.Group("/folders", middleware.AccessToken(cfg.JWTSecret))
	{
		folders.POST("", func(c *gin.Context) {
			CreateFolder(c, fs)
		})
		folders.GET("", func(c *gin.Context) {
			ListFolders(c, fs, log)
		})
		folders.DELETE("/:id", func(c *gin.Context) {
			DeleteFolder(c, fs, log)
		})
	}

	notes := router.Group("/notes", middleware.AccessToken(cfg.JWTSecret))
	{
		notes.POST("", func(c *gin.Context) {
			CreateNote(c, fs)
		})
		notes.GET("", func(c *gin.Context) {
			ListNotes(c, fs, log)
		})
		notes.GET("/grouped", func(c *gin.Context) {
			GroupedNotes(c, fs, log)
		})
		notes.PUT("/:id", func(c *gin.Context) {
			UpdateNote(c, fs)
		})
		notes.DELETE("/:id", func(c *gin.Context) {
			DeleteNote(c, fs)
		})
	}
}

func CreateFolder(c *gin.Context, fs *firestore.Client) {
	userID := c.MustGet("userId").(string)

	var request dto.CreateFolderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	name := strings.TrimSpace(request.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Folder name must not be empty"})
		return
	}

	newFolder := model.Folder{
		OwnerID:   userID,
		Name:      name,
		CreatedAt: time.Now(),
	}

	ref := fs.Collection("folders").NewDoc()
	if _, err := ref.Set(c.Request.Context(), newFolder); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create folder"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Folder created successfully",
		"folderId": ref.ID,
	})
}

func ListFolders(c *gin.Context, fs *firestore.Client, log *zap.Logger) {
	userID := c.MustGet("userId").(string)

	folders := []model.Folder{}
	iter := fs.Collection("folders").Where("userId", "==", userID).Documents(c.Request.Context())
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to list folders"})
			return
		}
		folder, err := services.NormalizeFolder(doc.Ref.ID, doc.Data())
		if err != nil {
			log.Warn("skipping undecodable folder", zap.Error(err))
			continue
		}
		folders = append(folders, folder)
	}

	c.JSON(http.StatusOK, folders)
}

// DeleteFolder cascades: every note in the folder is deleted first, and the
// folder is only removed when all of them went through.
func DeleteFolder(c *gin.Context, fs *firestore.Client, log *zap.Logger) {
	userID := c.MustGet("userId").(string)
	folderID := c.Param("id")

	ctx := c.Request.Context()
	doc, err := fs.Collection("folders").Doc(folderID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		} else {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load folder"})
		}
		return
	}
	folder, err := services.NormalizeFolder(doc.Ref.ID, doc.Data())
	if err != nil || folder.OwnerID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		return
	}

	if err := services.DeleteFolderCascade(ctx, fs, userID, folderID); err != nil {
		log.Error("folder cascade delete stopped", zap.String("folder", folderID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Folder deletion stopped before completing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Folder and its notes deleted"})
}

func CreateNote(c *gin.Context, fs *firestore.Client) {
	userID := c.MustGet("userId").(string)

	var request dto.SaveNoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	folderID := request.FolderID
	if folderID == "" {
		folderID = model.UncategorizedFolder
	}

	now := time.Now()
	newNote := model.Note{
		OwnerID:   userID,
		FolderID:  folderID,
		Title:     request.Title,
		Content:   request.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ref := fs.Collection("notes").NewDoc()
	if _, err := ref.Set(c.Request.Context(), newNote); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create note"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Note created successfully",
		"noteId":  ref.ID,
	})
}

// UpdateNote replaces title, content and folder; updatedAt refreshes on
// every save.
func UpdateNote(c *gin.Context, fs *firestore.Client) {
	userID := c.MustGet("userId").(string)
	noteID := c.Param("id")

	var request dto.SaveNoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	folderID := request.FolderID
	if folderID == "" {
		folderID = model.UncategorizedFolder
	}

	if !ownsNote(c, fs, noteID, userID) {
		return
	}

	_, err := fs.Collection("notes").Doc(noteID).Update(c.Request.Context(), []firestore.Update{
		{Path: "title", Value: request.Title},
		{Path: "content", Value: request.Content},
		{Path: "folderId", Value: folderID},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note updated successfully"})
}

func DeleteNote(c *gin.Context, fs *firestore.Client) {
	userID := c.MustGet("userId").(string)
	noteID := c.Param("id")

	if !ownsNote(c, fs, noteID, userID) {
		return
	}

	if _, err := fs.Collection("notes").Doc(noteID).Delete(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}

func ListNotes(c *gin.Context, fs *firestore.Client, log *zap.Logger) {
	userID := c.MustGet("userId").(string)

	notes, err := queryNotes(c, fs, userID, log)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to list notes"})
		return
	}

	c.JSON(http.StatusOK, notes)
}

// GroupedNotes returns the notes bucketed by folder id, with the
// uncategorized sentinel collecting folderless notes.
func GroupedNotes(c *gin.Context, fs *firestore.Client, log *zap.Logger) {
	userID := c.MustGet("userId").(string)

	notes, err := queryNotes(c, fs, userID, log)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to list notes"})
		return
	}

	c.JSON(http.StatusOK, services.GroupByFolder(notes))
}

func queryNotes(c *gin.Context, fs *firestore.Client, userID string, log *zap.Logger) ([]model.Note, error) {
	notes := []model.Note{}
	iter := fs.Collection("notes").Where("userId", "==", userID).Documents(c.Request.Context())
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return notes, nil
		}
		if err != nil {
			return nil, err
		}
		note, err := services.NormalizeNote(doc.Ref.ID, doc.Data())
		if err != nil {
			log.Warn("skipping undecodable note", zap.Error(err))
			continue
		}
		notes = append(notes, note)
	}
}

func ownsNote(c *gin.Context, fs *firestore.Client, noteID, userID string) bool {
	doc, err := fs.Collection("notes").Doc(noteID).Get(c.Request.Context())
	if err != nil {
		if status.Code(err) == codes.NotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		} else {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load note"})
		}
		return false
	}

	note, err := services.NormalizeNote(doc.Ref.ID, doc.Data())
	if err != nil || note.OwnerID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return false
	}
	return true
}
