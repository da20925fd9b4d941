package task

import (
	"fmt"
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

func TaskController(router *gin.Engine, fs *firestore.Client, cfg *config.Config, notifier *services.Notifier, log *zap.Logger) {
	routes := router.Group("/tasks", middleware.AccessToken(cfg.JWTSecret))
	{
		routes.POST("", func(c *gin.Context) {
			CreateTask(c, fs, notifier)
		})
		routes.GET("", func(c *gin.Context) {
			ListTasks(c, fs, log)
		})
		routes.GET("/calendar", func(c *gin.Context) {
			CalendarTasks(c, fs, log)
		})
		routes.PUT("/:id", func(c *gin.Context) {
			UpdateTask(c, fs)
		})
		routes.POST("/:id/complete", func(c *gin.Context) {
			CompleteTask(c, fs, notifier)
		})
		routes.POST("/:id/trash", func(c *gin.Context) {
			TrashTask(c, fs)
		})
		routes.POST("/:id/restore", func(c *gin.Context) {
			RestoreTask(c, fs)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			EraseTask(c, fs)
		})
	}
}

// CreateTask validates the request and writes one new active task. The store
// assigns the document id; clients learn the full record through the feed.
func CreateTask(c *gin.Context, fs *firestore.Client, notifier *services.Notifier) {
	userID := c.MustGet("userId").(string)

	var request dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if strings.TrimSpace(request.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title must not be empty"})
		return
	}

	dates, err := parseDates(request.Dates)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newTask := model.Task{
		OwnerID:     userID,
		Title:       request.Title,
		Description: request.Description,
		Priority:    request.Priority,
		Dates:       dates,
		Status:      model.TaskStatusActive,
		CreatedAt:   time.Now(),
	}

	ctx := c.Request.Context()
	ref := fs.Collection("tasks").NewDoc()
	if _, err := ref.Set(ctx, newTask); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create task"})
		return
	}

	if due, ok := services.DueToday(dates, time.Now()); ok {
		notifier.TaskDue(ctx, userID, newTask.Title, due)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"taskId":  ref.ID,
	})
}

// UpdateTask fully replaces the five mutable fields.
func UpdateTask(c *gin.Context, fs *firestore.Client) {
	userID := c.MustGet("userId").(string)

	var request dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if strings.TrimSpace(request.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title must not be empty"})
		return
	}

	dates, err := parseDates(request.Dates)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taskID := c.Param("id")
	if _, ok := loadOwnedTask(c, fs, taskID, userID); !ok {
		return
	}

	_, err = fs.Collection("tasks").Doc(taskID).Update(c.Request.Context(), []firestore.Update{
		{Path: "title", Value: request.Title},
		{Path: "description", Value: request.Description},
		{Path: "dates", Value: dates},
		{Path: "priority", Value: request.Priority},
	})
	if err != nil {
		writeUpdateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully"})
}

// CompleteTask marks the task completed, then emits a best-effort
// task-completed notification. A failed emit never rolls the status back.
func CompleteTask(c *gin.Context, fs *firestore.Client, notifier *services.Notifier) {
	userID := c.MustGet("userId").(string)
	taskID := c.Param("id")

	task, ok := loadOwnedTask(c, fs, taskID, userID)
	if !ok {
		return
	}

	_, err := fs.Collection("tasks").Doc(taskID).Update(c.Request.Context(), []firestore.Update{
		{Path: "status", Value: model.TaskStatusCompleted},
		{Path: "completedAt", Value: time.Now()},
	})
	if err != nil {
		writeUpdateError(c, err)
		return
	}

	notifier.TaskCompleted(c.Request.Context(), userID, task.Title)

	c.JSON(http.StatusOK, gin.H{"message": "Task completed"})
}

// TrashTask soft-deletes the task; it can be restored later.
func TrashTask(c *gin.Context, fs *firestore.Client) {
	userID := c.MustGet("userId").(string)
	taskID := c.Param("id")

	if _, ok := loadOwnedTask(c, fs, taskID, userID); !ok {
		return
	}

	_, err := fs.Collection("tasks").Doc(taskID).Update(c.Request.Context(), []firestore.Update{
		{Path: "status", Value: model.TaskStatusDeleted},
		{Path: "deletedAt", Value: time.Now()},
	})
	if err != nil {
		writeUpdateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task moved to trash"})
}

// RestoreTask sets the task active again. Audit timestamps are left in place
// and ignored while the task is active.
func RestoreTask(c *gin.Context, fs *firestore.Client) {
	userID := c.MustGet("userId").(string)
	taskID := c.Param("id")

	if _, ok := loadOwnedTask(c, fs, taskID, userID); !ok {
		return
	}

	_, err := fs.Collection("tasks").Doc(taskID).Update(c.Request.Context(), []firestore.Update{
		{Path: "status", Value: model.TaskStatusActive},
	})
	if err != nil {
		writeUpdateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task restored"})
}

// EraseTask performs the irreversible hard delete.
func EraseTask(c *gin.Context, fs *firestore.Client) {
	userID := c.MustGet("userId").(string)
	taskID := c.Param("id")

	if _, ok := loadOwnedTask(c, fs, taskID, userID); !ok {
		return
	}

	if _, err := fs.Collection("tasks").Doc(taskID).Delete(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task permanently deleted"})
}

// ListTasks is the one-shot read for clients that do not hold a stream open.
// An optional status query narrows the result.
func ListTasks(c *gin.Context, fs *firestore.Client, log *zap.Logger) {
	userID := c.MustGet("userId").(string)

	tasks, err := queryTasks(c, fs, userID, c.Query("status"), log)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CalendarTasks returns the active tasks grouped by day key, ready for a
// month grid. Keys use the client's year-month-day format with a zero-based
// month.
func CalendarTasks(c *gin.Context, fs *firestore.Client, log *zap.Logger) {
	userID := c.MustGet("userId").(string)

	tasks, err := queryTasks(c, fs, userID, model.TaskStatusActive, log)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	grouped := make(map[string][]model.Task)
	for key, dayTasks := range services.IndexByDay(tasks) {
		grouped[key.String()] = dayTasks
	}

	c.JSON(http.StatusOK, grouped)
}

func queryTasks(c *gin.Context, fs *firestore.Client, userID, statusFilter string, log *zap.Logger) ([]model.Task, error) {
	q := fs.Collection("tasks").Where("userId", "==", userID)
	if statusFilter != "" {
		q = q.Where("status", "==", statusFilter)
	}

	tasks := []model.Task{}
	iter := q.Documents(c.Request.Context())
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return tasks, nil
		}
		if err != nil {
			return nil, err
		}
		task, err := services.NormalizeTask(doc.Ref.ID, doc.Data())
		if err != nil {
			log.Warn("skipping undecodable task", zap.Error(err))
			continue
		}
		tasks = append(tasks, task)
	}
}

// loadOwnedTask fetches the task and enforces ownership, writing the error
// response itself when the task is unavailable.
func loadOwnedTask(c *gin.Context, fs *firestore.Client, taskID, userID string) (model.Task, bool) {
	doc, err := fs.Collection("tasks").Doc(taskID).Get(c.Request.Context())
	if err != nil {
		if status.Code(err) == codes.NotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load task"})
		}
		return model.Task{}, false
	}

	task, err := services.NormalizeTask(doc.Ref.ID, doc.Data())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse task data"})
		return model.Task{}, false
	}
	if task.OwnerID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return model.Task{}, false
	}

	return task, true
}

func writeUpdateError(c *gin.Context, err error) {
	if status.Code(err) == codes.NotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update task"})
}

func parseDates(raw []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		d, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", model.ErrValidation, s)
		}
		dates = append(dates, d)
	}
	return dates, nil
}
