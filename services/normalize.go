package services

import (
	"fmt"
	"time"

	"taskcal/model"
)

// Documents written by older clients may carry timestamps as RFC3339 strings
// instead of native Firestore timestamps, and optional fields may be absent
// entirely. Normalization turns whatever is stored into the strict domain
// shape, applying the documented defaults.

func NormalizeTask(id string, data map[string]interface{}) (model.Task, error) {
	task := model.Task{
		ID:          id,
		OwnerID:     asString(data["userId"]),
		Title:       asString(data["title"]),
		Description: asString(data["description"]),
		Priority:    asString(data["priority"]),
		Status:      asString(data["status"]),
	}
	if task.Status == "" {
		task.Status = model.TaskStatusActive
	}

	if created, ok := asTime(data["createdAt"]); ok {
		task.CreatedAt = created
	}
	if completed, ok := asTime(data["completedAt"]); ok {
		task.CompletedAt = &completed
	}
	if deleted, ok := asTime(data["deletedAt"]); ok {
		task.DeletedAt = &deleted
	}

	rawDates, _ := data["dates"].([]interface{})
	for _, raw := range rawDates {
		d, ok := asTime(raw)
		if !ok {
			return model.Task{}, fmt.Errorf("task %s: undecodable date %v", id, raw)
		}
		task.Dates = append(task.Dates, d)
	}

	return task, nil
}

func NormalizeFolder(id string, data map[string]interface{}) (model.Folder, error) {
	folder := model.Folder{
		ID:      id,
		OwnerID: asString(data["userId"]),
		Name:    asString(data["name"]),
	}
	if created, ok := asTime(data["createdAt"]); ok {
		folder.CreatedAt = created
	}
	return folder, nil
}

func NormalizeNote(id string, data map[string]interface{}) (model.Note, error) {
	note := model.Note{
		ID:       id,
		OwnerID:  asString(data["userId"]),
		FolderID: asString(data["folderId"]),
		Title:    asString(data["title"]),
		Content:  asString(data["content"]),
	}
	if note.FolderID == "" {
		note.FolderID = model.UncategorizedFolder
	}
	if created, ok := asTime(data["createdAt"]); ok {
		note.CreatedAt = created
	}
	if updated, ok := asTime(data["updatedAt"]); ok {
		note.UpdatedAt = updated
	}
	return note, nil
}

func NormalizeNotification(id string, data map[string]interface{}) (model.Notification, error) {
	n := model.Notification{
		ID:      id,
		OwnerID: asString(data["userId"]),
		Title:   asString(data["title"]),
		Message: asString(data["message"]),
		Type:    asString(data["type"]),
	}
	if n.Type == "" {
		n.Type = model.NotificationSystem
	}
	if read, ok := data["read"].(bool); ok {
		n.Read = read
	}
	if created, ok := asTime(data["createdAt"]); ok {
		n.CreatedAt = created
	}
	return n, nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}
