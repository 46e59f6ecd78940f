package gcp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/Lllllllleong/howtoflow/internal/models"
	"google.golang.org/api/iterator"
)

// NewFirestoreClient creates and returns a new Firestore client for the given project ID.
// It centralizes client creation for all services.
func NewFirestoreClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore client")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return client, nil
}

// Store implements the pipeline's collection store on top of Firestore.
// The owner ID is stamped into the metadata of newly created documents.
type Store struct {
	client *firestore.Client
	owner  string
}

// NewStore wraps an existing Firestore client.
func NewStore(client *firestore.Client, owner string) *Store {
	return &Store{client: client, owner: owner}
}

// QueryBySlug returns all howtos in the collection carrying the given slug.
func (s *Store) QueryBySlug(ctx context.Context, collection, slug string) ([]models.Howto, error) {
	snaps, err := s.client.Collection(collection).Where("slug", "==", slug).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s by slug %q: %w", collection, slug, err)
	}
	howtos := make([]models.Howto, 0, len(snaps))
	for _, snap := range snaps {
		var h models.Howto
		if err := snap.DataTo(&h); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", snap.Ref.ID, err)
		}
		howtos = append(howtos, h)
	}
	return howtos, nil
}

// SetDoc fully overwrites the document at collection/id.
func (s *Store) SetDoc(ctx context.Context, collection, id string, doc *models.Howto) error {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, doc); err != nil {
		return fmt.Errorf("failed to write document %s/%s: %w", collection, id, err)
	}
	return nil
}

// GenerateID reserves a new Firestore document ID in the collection.
func (s *Store) GenerateID(collection string) string {
	return s.client.Collection(collection).NewDoc().ID
}

// GenerateMeta produces fresh system metadata for a new document.
func (s *Store) GenerateMeta(collection, id string) models.Metadata {
	now := time.Now()
	return models.Metadata{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: s.owner,
	}
}

// UpdateMeta carries creation metadata forward from an existing document and
// refreshes the update timestamp.
func (s *Store) UpdateMeta(collection string, existing *models.Howto) models.Metadata {
	return models.Metadata{
		ID:        existing.ID,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now(),
		CreatedBy: existing.CreatedBy,
	}
}

// AllDocs surfaces the collection as a change-notification channel: every
// backing change produces the full current document list. The channel is
// closed when ctx is cancelled or the listener fails; callers restart it by
// calling AllDocs again.
func (s *Store) AllDocs(ctx context.Context, collection string) (<-chan []models.Howto, error) {
	snapIter := s.client.Collection(collection).Snapshots(ctx)
	ch := make(chan []models.Howto, 1)

	go func() {
		defer close(ch)
		defer snapIter.Stop()
		for {
			snap, err := snapIter.Next()
			if err == iterator.Done {
				return
			}
			if err != nil {
				slog.Error("Snapshot listener stopped", "collection", collection, "error", err)
				return
			}
			docs, err := snap.Documents.GetAll()
			if err != nil {
				slog.Error("Failed to read snapshot documents", "collection", collection, "error", err)
				return
			}
			howtos := make([]models.Howto, 0, len(docs))
			for _, d := range docs {
				var h models.Howto
				if err := d.DataTo(&h); err != nil {
					slog.Warn("Skipping undecodable document", "id", d.Ref.ID, "error", err)
					continue
				}
				howtos = append(howtos, h)
			}
			select {
			case ch <- howtos:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}
