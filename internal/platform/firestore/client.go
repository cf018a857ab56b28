package firestore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	gcfirestore "cloud.google.com/go/firestore"
	"github.com/phrazzld/task-manager-api/internal/config"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

const (
	// EmulatorHostEnv is read by the Firestore SDK; when set, the client
	// connects to the emulator without credentials.
	EmulatorHostEnv = "FIRESTORE_EMULATOR_HOST"

	// ConnectionTestCollection is queried by Ping.
	ConnectionTestCollection = "connection_test"

	// PingTimeout bounds the startup connectivity check.
	PingTimeout = 10 * time.Second

	datastoreScope = "https://www.googleapis.com/auth/datastore"
)

// NewClient creates the process-wide Firestore client.
// Credentials come from cfg.CredentialsFile when set, otherwise from the
// environment's application default credentials.
func NewClient(ctx context.Context, cfg config.FirestoreConfig, logger *slog.Logger) (*gcfirestore.Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var opts []option.ClientOption
	if host := os.Getenv(EmulatorHostEnv); host != "" {
		logger.Info("using Firestore emulator", "emulator_host", host, "project_id", cfg.ProjectID)
	} else {
		logger.Info("connecting to cloud Firestore", "project_id", cfg.ProjectID)

		if cfg.CredentialsFile != "" {
			data, err := os.ReadFile(cfg.CredentialsFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read credentials file: %w", err)
			}

			creds, err := google.CredentialsFromJSON(ctx, data, datastoreScope)
			if err != nil {
				return nil, fmt.Errorf("invalid credentials file: %w", err)
			}
			opts = append(opts, option.WithCredentials(creds))
		}
	}

	client, err := gcfirestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return client, nil
}

// Ping reads at most one document from ConnectionTestCollection, waiting up to
// PingTimeout. A nil error means the project is reachable with the client's
// credentials.
func Ping(ctx context.Context, client *gcfirestore.Client) error {
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	if _, err := client.Collection(ConnectionTestCollection).Limit(1).Documents(ctx).GetAll(); err != nil {
		return fmt.Errorf("failed to connect to firestore: %w", err)
	}
	return nil
}
