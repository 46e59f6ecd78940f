package gcp

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/storage"
	"github.com/Lllllllleong/howtoflow/internal/models"
	"github.com/google/uuid"
)

// GetEnv is a helper to read an environment variable or return a default value.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Storage implements the pipeline's blob uploader on top of a GCS bucket.
type Storage struct {
	client *storage.Client
	bucket string
}

// NewStorage wraps an existing GCS client for the given media bucket.
func NewStorage(client *storage.Client, bucket string) *Storage {
	return &Storage{client: client, bucket: bucket}
}

// UploadFile writes the payload under pathPrefix and returns its artifact
// descriptor. Object names carry a UUID so two selections of the same
// filename never overwrite each other.
func (s *Storage) UploadFile(ctx context.Context, pathPrefix, filename string, data []byte, mimeType string) (models.UploadedArtifact, error) {
	objectName := fmt.Sprintf("%s/%s-%s", pathPrefix, uuid.NewString(), filename)

	writer := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	writer.ContentType = mimeType
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return models.UploadedArtifact{}, fmt.Errorf("failed to write to GCS object %s: %w", objectName, err)
	}
	if err := writer.Close(); err != nil {
		return models.UploadedArtifact{}, fmt.Errorf("failed to finalize GCS write for %s: %w", objectName, err)
	}

	return models.UploadedArtifact{
		URL:      fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectName),
		Filename: filename,
		MimeType: mimeType,
	}, nil
}
