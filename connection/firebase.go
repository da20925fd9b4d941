package connection

import (
	"context"

	"taskcal/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

// Clients bundles the Firebase handles the controllers share.
type Clients struct {
	Firestore *firestore.Client
	Auth      *auth.Client
}

// Firebase initializes the Firebase app and returns Firestore and Auth clients.
func Firebase(ctx context.Context, cfg *config.Config) (*Clients, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, err
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, err
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		fs.Close()
		return nil, err
	}

	return &Clients{Firestore: fs, Auth: authClient}, nil
}
