package models

// These structs define the JSON payload of the submission CloudEvent handled
// by the howto-submitter function. Binary payloads arrive base64-encoded,
// which encoding/json handles natively for []byte fields.

// MediaPayload is the wire form of a MediaReference. The variant is decided by
// which fields are present: a URL marks an already uploaded artifact and wins
// over a preview payload, a preview payload wins over raw data.
type MediaPayload struct {
	URL       string `json:"url,omitempty"`
	Preview   []byte `json:"preview,omitempty"`
	Data      []byte `json:"data,omitempty"`
	Filename  string `json:"filename"`
	MimeType  string `json:"mimeType"`
	PageCount int    `json:"pageCount,omitempty"`
}

// ToReference resolves the wire payload into its MediaReference variant.
func (p MediaPayload) ToReference() MediaReference {
	switch {
	case p.URL != "":
		return UploadedArtifact{
			URL:       p.URL,
			Filename:  p.Filename,
			MimeType:  p.MimeType,
			PageCount: p.PageCount,
		}
	case len(p.Preview) > 0:
		return PreviewFile{Data: p.Preview, Filename: p.Filename, MimeType: p.MimeType}
	default:
		return RawLocalFile{Data: p.Data, Filename: p.Filename, MimeType: p.MimeType}
	}
}

// StepPayload is the wire form of a StepInput.
type StepPayload struct {
	Title  string         `json:"title"`
	Text   string         `json:"text"`
	Images []MediaPayload `json:"images"`
}

// SubmissionEvent is the input for the howto-submitter function.
type SubmissionEvent struct {
	HowtoID     string         `json:"howtoId"`
	IsUpdate    bool           `json:"isUpdate"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags"`
	Cover       MediaPayload   `json:"cover"`
	Steps       []StepPayload  `json:"steps"`
	Files       []MediaPayload `json:"files"`
}

// ToInput converts the event into the pipeline's SubmissionInput.
func (e SubmissionEvent) ToInput() *SubmissionInput {
	steps := make([]StepInput, 0, len(e.Steps))
	for _, s := range e.Steps {
		steps = append(steps, StepInput{
			Title:  s.Title,
			Text:   s.Text,
			Images: toReferences(s.Images),
		})
	}
	return &SubmissionInput{
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		Tags:        e.Tags,
		Cover:       e.Cover.ToReference(),
		Steps:       steps,
		Files:       toReferences(e.Files),
	}
}

func toReferences(payloads []MediaPayload) []MediaReference {
	if len(payloads) == 0 {
		return nil
	}
	refs := make([]MediaReference, 0, len(payloads))
	for _, p := range payloads {
		refs = append(refs, p.ToReference())
	}
	return refs
}

// SubmissionResponse is the output of the howto-submitter function.
type SubmissionResponse struct {
	Status   string        `json:"status"`
	HowtoID  string        `json:"howtoId"`
	Progress ProgressState `json:"progress"`
}
