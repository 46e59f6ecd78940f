package services

import (
	"sync"

	"github.com/Lllllllleong/howtoflow/internal/models"
)

// Milestone names one submission progress flag.
type Milestone string

const (
	MilestoneCover      Milestone = "cover"
	MilestoneStepImages Milestone = "stepImages"
	MilestoneFiles      Milestone = "files"
	MilestoneDatabase   Milestone = "database"
	MilestoneComplete   Milestone = "complete"
)

// Progress tracks the milestones of one submission attempt. It is scoped to a
// single attempt so overlapping submissions never share state; a UI goroutine
// may poll State while the pipeline runs.
type Progress struct {
	mu    sync.Mutex
	state models.ProgressState
}

// NewProgress returns a tracker with all milestones unset.
func NewProgress() *Progress {
	return &Progress{}
}

// Mark sets the given milestone. Milestones are monotone within one attempt:
// marking one that is already set is a no-op, and nothing ever unsets one
// short of Reset.
func (p *Progress) Mark(m Milestone) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch m {
	case MilestoneCover:
		p.state.Cover = true
	case MilestoneStepImages:
		p.state.StepImages = true
	case MilestoneFiles:
		p.state.Files = true
	case MilestoneDatabase:
		p.state.Database = true
	case MilestoneComplete:
		p.state.Complete = true
	}
}

// Reset clears every milestone for a new attempt.
func (p *Progress) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = models.ProgressState{}
}

// State returns a copy of the current milestone flags.
func (p *Progress) State() models.ProgressState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
