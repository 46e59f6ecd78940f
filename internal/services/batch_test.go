package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Lllllllleong/howtoflow/internal/models"
	"github.com/stretchr/testify/require"
)

func TestUploadAll_PreservesInputOrder(t *testing.T) {
	blob := newFakeBlob()
	// First file finishes last, last finishes first.
	blob.delay["a.png"] = 30 * time.Millisecond
	blob.delay["b.png"] = 15 * time.Millisecond
	batch := NewBatchUploader(NewMediaUploader(blob))

	refs := []models.MediaReference{
		models.RawLocalFile{Data: []byte("a"), Filename: "a.png", MimeType: "image/png"},
		models.RawLocalFile{Data: []byte("b"), Filename: "b.png", MimeType: "image/png"},
		models.RawLocalFile{Data: []byte("c"), Filename: "c.png", MimeType: "image/png"},
	}
	artifacts, err := batch.UploadAll(context.Background(), refs, "howto-1")

	require.NoError(t, err)
	require.Len(t, artifacts, 3)
	require.Equal(t, "a.png", artifacts[0].Filename)
	require.Equal(t, "b.png", artifacts[1].Filename)
	require.Equal(t, "c.png", artifacts[2].Filename)
}

func TestUploadAll_FailsAsAWhole(t *testing.T) {
	blob := newFakeBlob()
	blob.failOn["b.png"] = errors.New("network reset")
	batch := NewBatchUploader(NewMediaUploader(blob))

	refs := []models.MediaReference{
		models.RawLocalFile{Data: []byte("a"), Filename: "a.png", MimeType: "image/png"},
		models.RawLocalFile{Data: []byte("b"), Filename: "b.png", MimeType: "image/png"},
	}
	artifacts, err := batch.UploadAll(context.Background(), refs, "howto-1")

	require.Error(t, err)
	require.ErrorIs(t, err, ErrUpload)
	require.Nil(t, artifacts, "no partial batch result may be returned")
}

func TestUploadAll_EmptyBatch(t *testing.T) {
	blob := newFakeBlob()
	batch := NewBatchUploader(NewMediaUploader(blob))

	artifacts, err := batch.UploadAll(context.Background(), nil, "howto-1")

	require.NoError(t, err)
	require.Empty(t, artifacts)
	require.Empty(t, blob.uploads())
}

func TestUploadAll_SkipsAlreadyUploaded(t *testing.T) {
	blob := newFakeBlob()
	batch := NewBatchUploader(NewMediaUploader(blob))

	existing := models.UploadedArtifact{URL: "https://blob.test/x", Filename: "x.png", MimeType: "image/png"}
	refs := []models.MediaReference{
		existing,
		models.RawLocalFile{Data: []byte("y"), Filename: "y.png", MimeType: "image/png"},
	}
	artifacts, err := batch.UploadAll(context.Background(), refs, "howto-1")

	require.NoError(t, err)
	require.Equal(t, existing, artifacts[0])
	require.Equal(t, []string{"y.png"}, blob.uploads())
}
