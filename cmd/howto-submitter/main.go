package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/Lllllllleong/howtoflow/internal/gcp"
	"github.com/Lllllllleong/howtoflow/internal/models"
	"github.com/Lllllllleong/howtoflow/internal/services"
	cloudevents "github.com/cloudevents/sdk-go/v2"
)

var (
	submitterInstance *services.Submitter
	once              sync.Once
	initErr           error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Register the CloudEvent function. The framework will handle routing the event here.
	functions.CloudEvent("SubmitHowto", submitHowto)
}

// main is required by the Go Functions Framework.
func main() {}

// newSubmitter builds the pipeline from environment configuration. Called
// once per instance.
func newSubmitter(ctx context.Context) (*services.Submitter, error) {
	projectID := gcp.GetEnv("GCP_PROJECT", "")
	if projectID == "" {
		return nil, fmt.Errorf("GCP_PROJECT environment variable must be set")
	}
	bucket := gcp.GetEnv("HOWTO_MEDIA_BUCKET", "")
	if bucket == "" {
		return nil, fmt.Errorf("HOWTO_MEDIA_BUCKET must be set")
	}
	collection := gcp.GetEnv("FIRESTORE_COLLECTION", "howtos")
	owner := gcp.GetEnv("SUBMITTER_UID", "")

	firestoreClient, err := gcp.NewFirestoreClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Storage client: %w", err)
	}

	return services.NewSubmitter(
		gcp.NewStorage(storageClient, bucket),
		gcp.NewStore(firestoreClient, owner),
		services.SubmitterConfig{Collection: collection},
	), nil
}

// submitHowto is the Cloud Function entry point.
func submitHowto(ctx context.Context, e cloudevents.Event) error {
	// Use sync.Once for robust, one-time initialization of clients.
	once.Do(func() {
		submitterInstance, initErr = newSubmitter(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		return initErr
	}

	var ev models.SubmissionEvent
	if err := json.Unmarshal(e.Data(), &ev); err != nil {
		slog.Error("Failed to unmarshal event data", "error", err, "data", string(e.Data()))
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	id := ev.HowtoID
	if id == "" {
		if ev.IsUpdate {
			return fmt.Errorf("update event without howtoId")
		}
		id = submitterInstance.GenerateID()
	}

	// An update derives its creation metadata from the active document; load
	// it by slug if this instance has not seen the howto yet.
	if ev.IsUpdate && submitterInstance.Active() == nil {
		if _, err := submitterInstance.LoadBySlug(ctx, ev.Slug); err != nil {
			return err
		}
	}

	progress := services.NewProgress()
	if _, err := submitterInstance.Submit(ctx, ev.ToInput(), id, ev.IsUpdate, progress); err != nil {
		// The error is already logged with context within Submit.
		return err
	}
	return nil
}
