package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/Lllllllleong/howtoflow/internal/models"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const mimePDF = "application/pdf"

// MediaUploader resolves a single MediaReference into an UploadedArtifact.
type MediaUploader struct {
	blob BlobUploader
}

// NewMediaUploader creates a MediaUploader backed by the given blob store.
func NewMediaUploader(blob BlobUploader) *MediaUploader {
	return &MediaUploader{blob: blob}
}

// Upload resolves ref into an artifact, storing the payload under a path
// namespaced by contextID. An UploadedArtifact passes through unchanged
// without touching the blob store; this check runs before any other
// discrimination.
func (u *MediaUploader) Upload(ctx context.Context, ref models.MediaReference, contextID string) (models.UploadedArtifact, error) {
	var data []byte
	var filename, mimeType string

	switch m := ref.(type) {
	case models.UploadedArtifact:
		return m, nil
	case models.PreviewFile:
		data, filename, mimeType = m.Data, m.Filename, m.MimeType
	case models.RawLocalFile:
		data, filename, mimeType = m.Data, m.Filename, m.MimeType
	default:
		return models.UploadedArtifact{}, fmt.Errorf("%w: unsupported media reference %T", ErrUpload, ref)
	}

	artifact, err := u.blob.UploadFile(ctx, "howtos/"+contextID, filename, data, mimeType)
	if err != nil {
		return models.UploadedArtifact{}, fmt.Errorf("%w: %s: %w", ErrUpload, filename, err)
	}

	if mimeType == mimePDF {
		artifact.PageCount = pdfPageCount(data, filename)
	}
	return artifact, nil
}

// pdfPageCount extracts the page count of an uploaded PDF so the UI can show
// it without fetching the blob. Unparseable PDFs are not a pipeline failure.
func pdfPageCount(data []byte, filename string) int {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	count, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		slog.Warn("Could not determine PDF page count", "filename", filename, "error", err)
		return 0
	}
	return count
}
