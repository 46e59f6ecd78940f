package models

import "time"

// MediaReference is one media item selected in the submission form. It is a
// closed union of three variants: RawLocalFile, PreviewFile and
// UploadedArtifact. Code that consumes a reference discriminates with a type
// switch; the UploadedArtifact case must be checked first so that an already
// uploaded item is never sent to the blob store again.
type MediaReference interface {
	isMediaReference()
}

// RawLocalFile is a file picked straight from the local filesystem.
type RawLocalFile struct {
	Data     []byte
	Filename string
	MimeType string
}

// PreviewFile carries the binary payload extracted from a client-side preview
// widget, together with the original file's name and type.
type PreviewFile struct {
	Data     []byte
	Filename string
	MimeType string
}

// UploadedArtifact is the durable result of a successful upload. It is only
// produced by the blob uploader; the pipeline passes it through unchanged when
// it reappears as a MediaReference on a later submission.
type UploadedArtifact struct {
	URL       string `firestore:"url" json:"url"`
	Filename  string `firestore:"filename" json:"filename"`
	MimeType  string `firestore:"mimeType" json:"mimeType"`
	PageCount int    `firestore:"pageCount,omitempty" json:"pageCount,omitempty"`
}

func (RawLocalFile) isMediaReference()     {}
func (PreviewFile) isMediaReference()      {}
func (UploadedArtifact) isMediaReference() {}

// StepInput is one ordered instructional unit as authored in the form, its
// images still unresolved.
type StepInput struct {
	Title  string
	Text   string
	Images []MediaReference
}

// Step is a StepInput with its images replaced by uploaded artifacts.
type Step struct {
	Title  string             `firestore:"title" json:"title"`
	Text   string             `firestore:"text" json:"text"`
	Images []UploadedArtifact `firestore:"images" json:"images"`
}

// SubmissionInput is the full form payload handed to the submission pipeline.
// Cover may be any MediaReference variant: a raw or preview file is uploaded,
// an UploadedArtifact is taken as already resolved.
type SubmissionInput struct {
	Title       string
	Slug        string
	Description string
	Tags        []string
	Cover       MediaReference
	Steps       []StepInput
	Files       []MediaReference
}

// Metadata is the system-managed part of a howto document.
type Metadata struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}

// Howto is the persisted tutorial record in Firestore. Identity is ID.
type Howto struct {
	ID          string             `firestore:"id" json:"id"`
	Title       string             `firestore:"title" json:"title"`
	Slug        string             `firestore:"slug" json:"slug"`
	Description string             `firestore:"description,omitempty" json:"description,omitempty"`
	Tags        []string           `firestore:"tags,omitempty" json:"tags,omitempty"`
	Cover       UploadedArtifact   `firestore:"cover" json:"cover"`
	Steps       []Step             `firestore:"steps" json:"steps"`
	Files       []UploadedArtifact `firestore:"files,omitempty" json:"files,omitempty"`
	CreatedAt   time.Time          `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `firestore:"updatedAt" json:"updatedAt"`
	CreatedBy   string             `firestore:"createdBy,omitempty" json:"createdBy,omitempty"`
}

// ProgressState is the set of submission milestones surfaced to the UI.
// Each flag is set exactly once, in field order, during one submission attempt.
type ProgressState struct {
	Cover      bool `json:"cover"`
	StepImages bool `json:"stepImages"`
	Files      bool `json:"files"`
	Database   bool `json:"database"`
	Complete   bool `json:"complete"`
}

// FilterByTags returns the howtos carrying at least one of the given tags.
// An empty tag list matches everything.
func FilterByTags(howtos []Howto, tags []string) []Howto {
	if len(tags) == 0 {
		return howtos
	}
	wanted := make(map[string]bool, len(tags))
	for _, t := range tags {
		wanted[t] = true
	}
	var out []Howto
	for _, h := range howtos {
		for _, t := range h.Tags {
			if wanted[t] {
				out = append(out, h)
				break
			}
		}
	}
	return out
}
