package connection

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"

	"teamhub/config"
)

// Firebase bundles the clients opened from one Firebase app.
type Firebase struct {
	Firestore  *firestore.Client
	Bucket     *storage.BucketHandle
	BucketName string
}

func (f *Firebase) Close() error {
	return f.Firestore.Close()
}

func FBConnection(ctx context.Context, cfg *config.Config) (*Firebase, error) {
	if err := cfg.ValidateStore(); err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("error initializing app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firestore client: %w", err)
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("error getting Storage client: %w", err)
	}
	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("error getting storage bucket: %w", err)
	}

	log.Println("Firestore connection successful")
	return &Firebase{Firestore: client, Bucket: bucket, BucketName: cfg.StorageBucket}, nil
}
