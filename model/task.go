package model

import (
	"time"
)

// Task statuses. A task leaves the calendar as soon as it is no longer active.
const (
	TaskStatusActive    = "active"
	TaskStatusCompleted = "completed"
	TaskStatusDeleted   = "deleted"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Task struct {
	ID          string      `firestore:"-" json:"id"`
	OwnerID     string      `firestore:"userId" json:"userId"`
	Title       string      `firestore:"title" json:"title"`
	Description string      `firestore:"description,omitempty" json:"description,omitempty"`
	Priority    string      `firestore:"priority" json:"priority"`
	Dates       []time.Time `firestore:"dates" json:"dates"`
	Status      string      `firestore:"status" json:"status"`
	CreatedAt   time.Time   `firestore:"createdAt" json:"createdAt"`
	CompletedAt *time.Time  `firestore:"completedAt,omitempty" json:"completedAt,omitempty"`
	DeletedAt   *time.Time  `firestore:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}
