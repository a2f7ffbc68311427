package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// FirebaseClients bundles the platform handles the services are built on.
// Bucket is nil when no storage bucket is configured; uploads stay disabled.
type FirebaseClients struct {
	Firestore *firestore.Client
	Bucket    *storage.BucketHandle
}

func OpenFirebase(ctx context.Context, credentialsPath, projectID, bucketName string) (*FirebaseClients, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     projectID,
		StorageBucket: bucketName,
	}, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("firebase init: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}

	clients := &FirebaseClients{Firestore: fs}

	if bucketName != "" {
		st, err := app.Storage(ctx)
		if err != nil {
			fs.Close()
			return nil, fmt.Errorf("storage client: %w", err)
		}
		bucket, err := st.DefaultBucket()
		if err != nil {
			fs.Close()
			return nil, fmt.Errorf("storage bucket: %w", err)
		}
		clients.Bucket = bucket
	}

	return clients, nil
}

func (f *FirebaseClients) Close() {
	if f.Firestore != nil {
		f.Firestore.Close()
	}
}
