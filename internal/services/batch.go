package services

import (
	"context"
	"fmt"

	"github.com/Lllllllleong/howtoflow/internal/models"
	"golang.org/x/sync/errgroup"
)

// BatchUploader fans MediaUploader out over one step's (or the supplementary
// files') media list.
type BatchUploader struct {
	media *MediaUploader
}

// NewBatchUploader creates a BatchUploader on top of the given MediaUploader.
func NewBatchUploader(media *MediaUploader) *BatchUploader {
	return &BatchUploader{media: media}
}

// UploadAll uploads every reference concurrently and returns the artifacts in
// input order. Batches are bounded by user-selected file counts, so there is
// no concurrency cap. If any upload fails the whole batch fails; in-flight
// siblings run to completion but their results are discarded, which is why a
// plain errgroup.Group is used rather than one with a cancelling context.
func (b *BatchUploader) UploadAll(ctx context.Context, refs []models.MediaReference, contextID string) ([]models.UploadedArtifact, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	artifacts := make([]models.UploadedArtifact, len(refs))
	var eg errgroup.Group
	for i, ref := range refs {
		index := i
		reference := ref
		eg.Go(func() error {
			artifact, err := b.media.Upload(ctx, reference, contextID)
			if err != nil {
				return fmt.Errorf("media %d: %w", index, err)
			}
			artifacts[index] = artifact
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}
