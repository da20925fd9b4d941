package services

import (
	"context"
	"fmt"
	"time"

	"taskcal/model"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
)

// Notifier writes notification records as side effects of task and account
// events. Emission is best-effort: the operation that triggered it must
// succeed even when the notification write fails.
type Notifier struct {
	fs  *firestore.Client
	log *zap.Logger
}

func NewNotifier(fs *firestore.Client, log *zap.Logger) *Notifier {
	return &Notifier{fs: fs, log: log}
}

// Emit performs one best-effort write. Failures are logged, never returned.
func (n *Notifier) Emit(ctx context.Context, ownerID, title, message, notifType string) {
	record := model.Notification{
		OwnerID:   ownerID,
		Title:     title,
		Message:   message,
		Type:      notifType,
		Read:      false,
		CreatedAt: time.Now(),
	}

	ref := n.fs.Collection("notifications").NewDoc()
	if _, err := ref.Set(ctx, record); err != nil {
		n.log.Warn("notification emit failed",
			zap.String("owner", ownerID),
			zap.String("type", notifType),
			zap.Error(err))
	}
}

func (n *Notifier) Welcome(ctx context.Context, ownerID string) {
	n.Emit(ctx, ownerID,
		"Welcome to Task Calendar! 🎉",
		"Start organizing your tasks by clicking 'Create Task'. Your tasks sync across all your devices.",
		model.NotificationSystem)
}

func (n *Notifier) TaskCompleted(ctx context.Context, ownerID, taskTitle string) {
	n.Emit(ctx, ownerID,
		"Task Completed! ✅",
		fmt.Sprintf("Great job! You completed %q.", taskTitle),
		model.NotificationTaskCompleted)
}

func (n *Notifier) TaskDue(ctx context.Context, ownerID, taskTitle string, due time.Time) {
	n.Emit(ctx, ownerID,
		"Task Due Today",
		fmt.Sprintf("%q is due %s. Don't forget to complete it!", taskTitle, due.Format("Mon, Jan 2")),
		model.NotificationTaskDue)
}

// MarkAllRead flips every unread notification of the owner in one atomic
// batch write.
func (n *Notifier) MarkAllRead(ctx context.Context, ownerID string) error {
	docs, err := n.fs.Collection("notifications").
		Where("userId", "==", ownerID).
		Where("read", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteWrite, err)
	}
	if len(docs) == 0 {
		return nil
	}

	batch := n.fs.Batch()
	for _, doc := range docs {
		batch.Update(doc.Ref, []firestore.Update{{Path: "read", Value: true}})
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteWrite, err)
	}
	return nil
}

// ClearAll deletes every notification of the owner in one atomic batch write.
func (n *Notifier) ClearAll(ctx context.Context, ownerID string) error {
	docs, err := n.fs.Collection("notifications").
		Where("userId", "==", ownerID).
		Documents(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteWrite, err)
	}
	if len(docs) == 0 {
		return nil
	}

	batch := n.fs.Batch()
	for _, doc := range docs {
		batch.Delete(doc.Ref)
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteWrite, err)
	}
	return nil
}

// UnreadCount derives the badge count from a normalized collection.
func UnreadCount(notifications []model.Notification) int {
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count
}
