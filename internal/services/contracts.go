package services

import (
	"context"

	"github.com/Lllllllleong/howtoflow/internal/models"
)

// BlobUploader writes one media payload to durable blob storage.
// Implemented for GCS by gcp.Storage.
type BlobUploader interface {
	// UploadFile stores data under pathPrefix and returns the artifact
	// descriptor the document will reference.
	UploadFile(ctx context.Context, pathPrefix, filename string, data []byte, mimeType string) (models.UploadedArtifact, error)
}

// CollectionStore is the keyed document store holding howto records.
// Implemented for Firestore by gcp.Store.
type CollectionStore interface {
	// QueryBySlug returns all documents in the collection with the given slug.
	QueryBySlug(ctx context.Context, collection, slug string) ([]models.Howto, error)

	// SetDoc fully overwrites the document at collection/id.
	SetDoc(ctx context.Context, collection, id string, doc *models.Howto) error

	// GenerateID reserves a fresh document ID in the collection.
	GenerateID(collection string) string

	// GenerateMeta produces system metadata for a newly created document.
	GenerateMeta(collection, id string) models.Metadata

	// UpdateMeta derives metadata for an update from the existing document.
	UpdateMeta(collection string, existing *models.Howto) models.Metadata

	// AllDocs emits the full document list on every backing change until ctx
	// is cancelled.
	AllDocs(ctx context.Context, collection string) (<-chan []models.Howto, error)
}
