package services

import (
	"context"
	"fmt"

	"github.com/Lllllllleong/howtoflow/internal/models"
)

// StepProcessor resolves the media of every tutorial step.
type StepProcessor struct {
	batch *BatchUploader
}

// NewStepProcessor creates a StepProcessor on top of the given BatchUploader.
func NewStepProcessor(batch *BatchUploader) *StepProcessor {
	return &StepProcessor{batch: batch}
}

// ProcessSteps uploads each step's images and returns the resolved step list,
// same length and order as the input. Steps run strictly one after another so
// total simultaneous uploads stay bounded by a single step's image count;
// images within a step upload concurrently. The first failing step aborts the
// rest and no partial list is returned.
func (p *StepProcessor) ProcessSteps(ctx context.Context, steps []models.StepInput, contextID string) ([]models.Step, error) {
	resolved := make([]models.Step, 0, len(steps))
	for i, step := range steps {
		images, err := p.batch.UploadAll(ctx, step.Images, contextID)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		resolved = append(resolved, models.Step{
			Title:  step.Title,
			Text:   step.Text,
			Images: images,
		})
	}
	return resolved, nil
}
