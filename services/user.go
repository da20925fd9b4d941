package services

import (
	"context"
	"fmt"
	"time"

	"taskcal/model"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// EnsureUserProfile creates the profile document on first sign-in and emits
// the welcome notification. Profiles are keyed by the auth identity and are
// never deleted by the application.
func EnsureUserProfile(ctx context.Context, fs *firestore.Client, notifier *Notifier, userID, email, displayName, photoURL string) (bool, error) {
	ref := fs.Collection("users").Doc(userID)

	_, err := ref.Get(ctx)
	if err == nil {
		return false, nil
	}
	if status.Code(err) != codes.NotFound {
		return false, fmt.Errorf("load user profile: %w: %v", model.ErrRemoteWrite, err)
	}

	profile := model.User{
		Email:       email,
		DisplayName: displayName,
		PhotoURL:    photoURL,
		Theme:       "system",
		Palette:     "blue",
		CreatedAt:   time.Now(),
	}
	if _, err := ref.Set(ctx, profile); err != nil {
		return false, fmt.Errorf("create user profile: %w: %v", model.ErrRemoteWrite, err)
	}

	notifier.Welcome(ctx, userID)
	return true, nil
}
