package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Lllllllleong/howtoflow/internal/models"
	"github.com/stretchr/testify/require"
)

func rawImage(name string) models.MediaReference {
	return models.RawLocalFile{Data: []byte(name), Filename: name, MimeType: "image/png"}
}

func TestProcessSteps_PreservesLengthAndOrder(t *testing.T) {
	blob := newFakeBlob()
	processor := NewStepProcessor(NewBatchUploader(NewMediaUploader(blob)))

	steps := []models.StepInput{
		{Title: "Cut", Text: "Cut the board.", Images: []models.MediaReference{rawImage("cut.png")}},
		{Title: "Sand", Text: "Sand the edges.", Images: nil},
		{Title: "Glue", Text: "Glue the parts.", Images: []models.MediaReference{rawImage("glue1.png"), rawImage("glue2.png")}},
	}
	resolved, err := processor.ProcessSteps(context.Background(), steps, "howto-1")

	require.NoError(t, err)
	require.Len(t, resolved, len(steps))
	for i := range steps {
		require.Equal(t, steps[i].Title, resolved[i].Title)
		require.Equal(t, steps[i].Text, resolved[i].Text)
		require.Len(t, resolved[i].Images, len(steps[i].Images))
	}
	require.Equal(t, "glue1.png", resolved[2].Images[0].Filename)
	require.Equal(t, "glue2.png", resolved[2].Images[1].Filename)
}

func TestProcessSteps_FailFastAbortsRemainingSteps(t *testing.T) {
	blob := newFakeBlob()
	blob.failOn["first.png"] = errors.New("disk full")
	processor := NewStepProcessor(NewBatchUploader(NewMediaUploader(blob)))

	steps := []models.StepInput{
		{Title: "One", Images: []models.MediaReference{rawImage("first.png")}},
		{Title: "Two", Images: []models.MediaReference{rawImage("second.png")}},
	}
	resolved, err := processor.ProcessSteps(context.Background(), steps, "howto-1")

	require.Error(t, err)
	require.ErrorIs(t, err, ErrUpload)
	require.Nil(t, resolved)
	require.NotContains(t, blob.uploads(), "second.png", "later steps must not start after a failure")
}
