package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/folio-works/portfolio-backend/config"
	"github.com/folio-works/portfolio-backend/internal/projects/domain"
)

// OpenFirestore initializes the Firebase Admin SDK from a service account file
// and returns its Firestore client.
func OpenFirestore(ctx context.Context, cfg config.FirebaseConfig) (*firestore.Client, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	var fbCfg *firebase.Config
	if cfg.ProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(ctx, fbCfg, opt)
	if err != nil {
		return nil, domain.NewStorageError("init", fmt.Errorf("failed to initialize Firebase app: %w", err))
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, domain.NewStorageError("init", fmt.Errorf("failed to get Firestore client: %w", err))
	}

	return client, nil
}
