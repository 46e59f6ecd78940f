package services

import (
	"context"
	"sync"
	"time"

	"github.com/Lllllllleong/howtoflow/internal/models"
)

// fakeBlob records every upload and can delay or fail individual filenames.
type fakeBlob struct {
	mu       sync.Mutex
	prefixes []string
	files    []string
	failOn   map[string]error
	delay    map[string]time.Duration
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{failOn: map[string]error{}, delay: map[string]time.Duration{}}
}

func (f *fakeBlob) UploadFile(ctx context.Context, pathPrefix, filename string, data []byte, mimeType string) (models.UploadedArtifact, error) {
	if d := f.delay[filename]; d > 0 {
		time.Sleep(d)
	}
	f.mu.Lock()
	f.prefixes = append(f.prefixes, pathPrefix)
	f.files = append(f.files, filename)
	f.mu.Unlock()
	if err := f.failOn[filename]; err != nil {
		return models.UploadedArtifact{}, err
	}
	return models.UploadedArtifact{
		URL:      "https://blob.test/" + pathPrefix + "/" + filename,
		Filename: filename,
		MimeType: mimeType,
	}, nil
}

func (f *fakeBlob) uploads() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.files...)
}

type setDocCall struct {
	collection string
	id         string
	doc        *models.Howto
}

// fakeStore records writes and counts which metadata path was taken.
type fakeStore struct {
	mu            sync.Mutex
	setDocs       []setDocCall
	setErr        error
	slugResults   []models.Howto
	generateMetas int
	updateMetas   int
	nextID        string
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: "generated-id"}
}

func (f *fakeStore) QueryBySlug(ctx context.Context, collection, slug string) ([]models.Howto, error) {
	return f.slugResults, nil
}

func (f *fakeStore) SetDoc(ctx context.Context, collection, id string, doc *models.Howto) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.mu.Lock()
	f.setDocs = append(f.setDocs, setDocCall{collection: collection, id: id, doc: doc})
	f.mu.Unlock()
	return nil
}

func (f *fakeStore) GenerateID(collection string) string {
	return f.nextID
}

func (f *fakeStore) GenerateMeta(collection, id string) models.Metadata {
	f.mu.Lock()
	f.generateMetas++
	f.mu.Unlock()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return models.Metadata{ID: id, CreatedAt: now, UpdatedAt: now, CreatedBy: "tester"}
}

func (f *fakeStore) UpdateMeta(collection string, existing *models.Howto) models.Metadata {
	f.mu.Lock()
	f.updateMetas++
	f.mu.Unlock()
	return models.Metadata{
		ID:        existing.ID,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: existing.CreatedAt.Add(time.Hour),
		CreatedBy: existing.CreatedBy,
	}
}

func (f *fakeStore) AllDocs(ctx context.Context, collection string) (<-chan []models.Howto, error) {
	ch := make(chan []models.Howto, 1)
	ch <- f.slugResults
	close(ch)
	return ch, nil
}
