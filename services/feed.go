package services

import (
	"context"
	"fmt"

	"taskcal/model"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Frame is the wire shape pushed to stream clients. A snapshot frame carries
// the full replacement collection, never a delta.
type Frame struct {
	Type       string      `json:"type"` // "snapshot" or "error"
	Collection string      `json:"collection,omitempty"`
	Status     string      `json:"status,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// RawDocument is one stored document before normalization.
type RawDocument struct {
	ID   string
	Data map[string]interface{}
}

// Feed owns live query subscriptions against the store. Each subscription is
// scoped to one (collection, owner, status-filter) tuple and republishes the
// freshly normalized batch on every change the store pushes.
type Feed struct {
	fs  *firestore.Client
	log *zap.Logger
}

func NewFeed(fs *firestore.Client, log *zap.Logger) *Feed {
	return &Feed{fs: fs, log: log}
}

var feedCollections = map[string]bool{
	"tasks":         true,
	"folders":       true,
	"notes":         true,
	"notifications": true,
}

func (f *Feed) query(collection, ownerID, statusFilter string) (firestore.Query, error) {
	if !feedCollections[collection] {
		return firestore.Query{}, fmt.Errorf("unknown collection %q", collection)
	}
	if statusFilter != "" && collection != "tasks" {
		return firestore.Query{}, fmt.Errorf("status filter is only valid for tasks")
	}

	q := f.fs.Collection(collection).Where("userId", "==", ownerID)
	if statusFilter != "" {
		q = q.Where("status", "==", statusFilter)
	}
	return q, nil
}

// Run consumes snapshots until ctx is canceled or the subscription fails.
// On failure it emits a single error frame and returns; it never emits a
// clearing batch, so the consumer keeps its last-known-good collection.
func (f *Feed) Run(ctx context.Context, collection, ownerID, statusFilter string, send func(Frame)) {
	q, err := f.query(collection, ownerID, statusFilter)
	if err != nil {
		send(Frame{Type: "error", Collection: collection, Status: statusFilter, Error: err.Error()})
		return
	}

	iter := q.Snapshots(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled {
				return
			}
			f.log.Error("snapshot subscription failed",
				zap.String("collection", collection),
				zap.String("owner", ownerID),
				zap.Error(err))
			send(Frame{
				Type:       "error",
				Collection: collection,
				Status:     statusFilter,
				Error:      fmt.Sprintf("%v: %v", model.ErrRemoteSubscription, err),
			})
			return
		}

		docs, err := readSnapshot(snap)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			f.log.Error("snapshot read failed",
				zap.String("collection", collection),
				zap.Error(err))
			send(Frame{
				Type:       "error",
				Collection: collection,
				Status:     statusFilter,
				Error:      fmt.Sprintf("%v: %v", model.ErrRemoteSubscription, err),
			})
			return
		}

		if !sendIfActive(ctx, send, Frame{
			Type:       "snapshot",
			Collection: collection,
			Status:     statusFilter,
			Data:       NormalizeBatch(collection, docs, f.log),
		}) {
			return
		}
	}
}

// sendIfActive drops the frame when the subscription has been released so
// that no batch is delivered after an unsubscribe returns.
func sendIfActive(ctx context.Context, send func(Frame), frame Frame) bool {
	if ctx.Err() != nil {
		return false
	}
	send(frame)
	return true
}

func readSnapshot(snap *firestore.QuerySnapshot) ([]RawDocument, error) {
	var docs []RawDocument
	for {
		doc, err := snap.Documents.Next()
		if err == iterator.Done {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, RawDocument{ID: doc.Ref.ID, Data: doc.Data()})
	}
}

// NormalizeBatch decodes raw documents into the domain shape for the given
// collection. An undecodable document is logged and skipped rather than
// poisoning the whole batch.
func NormalizeBatch(collection string, docs []RawDocument, log *zap.Logger) interface{} {
	switch collection {
	case "tasks":
		tasks := make([]model.Task, 0, len(docs))
		for _, doc := range docs {
			task, err := NormalizeTask(doc.ID, doc.Data)
			if err != nil {
				log.Warn("skipping undecodable document", zap.String("collection", collection), zap.Error(err))
				continue
			}
			tasks = append(tasks, task)
		}
		return tasks
	case "folders":
		folders := make([]model.Folder, 0, len(docs))
		for _, doc := range docs {
			folder, err := NormalizeFolder(doc.ID, doc.Data)
			if err != nil {
				log.Warn("skipping undecodable document", zap.String("collection", collection), zap.Error(err))
				continue
			}
			folders = append(folders, folder)
		}
		return folders
	case "notes":
		notes := make([]model.Note, 0, len(docs))
		for _, doc := range docs {
			note, err := NormalizeNote(doc.ID, doc.Data)
			if err != nil {
				log.Warn("skipping undecodable document", zap.String("collection", collection), zap.Error(err))
				continue
			}
			notes = append(notes, note)
		}
		return notes
	case "notifications":
		notifications := make([]model.Notification, 0, len(docs))
		for _, doc := range docs {
			n, err := NormalizeNotification(doc.ID, doc.Data)
			if err != nil {
				log.Warn("skipping undecodable document", zap.String("collection", collection), zap.Error(err))
				continue
			}
			notifications = append(notifications, n)
		}
		return notifications
	default:
		return nil
	}
}
