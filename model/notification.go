package model

import (
	"time"
)

// Notification types.
const (
	NotificationTaskDue       = "task_due"
	NotificationTaskCompleted = "task_completed"
	NotificationSystem        = "system"
)

type Notification struct {
	ID        string    `firestore:"-" json:"id"`
	OwnerID   string    `firestore:"userId" json:"userId"`
	Title     string    `firestore:"title" json:"title"`
	Message   string    `firestore:"message" json:"message"`
	Type      string    `firestore:"type" json:"type"`
	Read      bool      `firestore:"read" json:"read"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
