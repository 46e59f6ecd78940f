package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Lllllllleong/howtoflow/internal/models"
)

// SubmitterConfig holds configuration for the submission pipeline.
type SubmitterConfig struct {
	Collection string
}

// Submitter is the top-level submission orchestrator. It resolves the cover,
// the step images and the supplementary files, assembles the final document
// and persists it. The active document is the most recently submitted or
// loaded howto; it is what an update derives its creation metadata from.
type Submitter struct {
	media  *MediaUploader
	batch  *BatchUploader
	steps  *StepProcessor
	store  CollectionStore
	config SubmitterConfig

	mu     sync.Mutex
	active *models.Howto
}

// NewSubmitter wires the pipeline onto the given blob store and collection store.
func NewSubmitter(blob BlobUploader, store CollectionStore, config SubmitterConfig) *Submitter {
	media := NewMediaUploader(blob)
	batch := NewBatchUploader(media)
	return &Submitter{
		media:  media,
		batch:  batch,
		steps:  NewStepProcessor(batch),
		store:  store,
		config: config,
	}
}

// Submit runs the full pipeline for one howto and returns the persisted
// document. Milestones are marked on progress as each stage completes; on
// failure no milestone past the failing stage is set, nothing is persisted,
// and the cause comes back wrapped in ErrSubmission. A failed submission is
// simply re-invoked in full: re-upload is cheap because artifacts that made
// it to the blob store come back as already-uploaded references.
func (s *Submitter) Submit(ctx context.Context, input *models.SubmissionInput, id string, isUpdate bool, progress *Progress) (*models.Howto, error) {
	logCtx := slog.With("howtoId", id, "isUpdate", isUpdate)
	logCtx.Info("Starting submission.", "steps", len(input.Steps), "files", len(input.Files))

	doc, err := s.run(ctx, logCtx, input, id, isUpdate, progress)
	if err != nil {
		logCtx.Error("Submission failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrSubmission, err)
	}

	s.mu.Lock()
	s.active = doc
	s.mu.Unlock()
	logCtx.Info("Submission complete.")
	return doc, nil
}

func (s *Submitter) run(ctx context.Context, logCtx *slog.Logger, input *models.SubmissionInput, id string, isUpdate bool, progress *Progress) (*models.Howto, error) {
	cover, err := s.media.Upload(ctx, input.Cover, id)
	if err != nil {
		return nil, fmt.Errorf("cover: %w", err)
	}
	progress.Mark(MilestoneCover)

	steps, err := s.steps.ProcessSteps(ctx, input.Steps, id)
	if err != nil {
		return nil, err
	}
	progress.Mark(MilestoneStepImages)

	files, err := s.batch.UploadAll(ctx, input.Files, id)
	if err != nil {
		return nil, fmt.Errorf("files: %w", err)
	}
	progress.Mark(MilestoneFiles)

	var meta models.Metadata
	if isUpdate {
		existing := s.Active()
		if existing == nil {
			return nil, fmt.Errorf("update of %s without an active document", id)
		}
		meta = s.store.UpdateMeta(s.config.Collection, existing)
	} else {
		meta = s.store.GenerateMeta(s.config.Collection, id)
	}

	doc := &models.Howto{
		ID:          id,
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
		Tags:        input.Tags,
		Cover:       cover,
		Steps:       steps,
		Files:       files,
		CreatedAt:   meta.CreatedAt,
		UpdatedAt:   meta.UpdatedAt,
		CreatedBy:   meta.CreatedBy,
	}

	if err := s.store.SetDoc(ctx, s.config.Collection, id, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	progress.Mark(MilestoneDatabase)
	progress.Mark(MilestoneComplete)

	logCtx.Info("Document persisted.", "collection", s.config.Collection)
	return doc, nil
}

// GenerateID reserves a fresh document ID for a new submission.
func (s *Submitter) GenerateID() string {
	return s.store.GenerateID(s.config.Collection)
}

// LoadBySlug fetches a howto by its slug and makes it the active document,
// which is the usual prelude to submitting an update. Returns nil when no
// document carries the slug.
func (s *Submitter) LoadBySlug(ctx context.Context, slug string) (*models.Howto, error) {
	howtos, err := s.store.QueryBySlug(ctx, s.config.Collection, slug)
	if err != nil {
		return nil, err
	}
	if len(howtos) == 0 {
		return nil, nil
	}
	doc := &howtos[0]
	s.SetActive(doc)
	return doc, nil
}

// Watch exposes the collection's change-notification channel.
func (s *Submitter) Watch(ctx context.Context) (<-chan []models.Howto, error) {
	return s.store.AllDocs(ctx, s.config.Collection)
}

// Active returns the most recently submitted or loaded document, or nil.
func (s *Submitter) Active() *models.Howto {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// SetActive publishes doc as the active document.
func (s *Submitter) SetActive(doc *models.Howto) {
	s.mu.Lock()
	s.active = doc
	s.mu.Unlock()
}
