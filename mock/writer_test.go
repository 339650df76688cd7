package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/notegrab"
	"github.com/fwojciec/notegrab/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where NoteWriter is expected
	var _ notegrab.NoteWriter = &mock.NoteWriter{}
}

func TestNoteWriter_WriteNote(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteNoteFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *notegrab.NoteRecord
		w := &mock.NoteWriter{
			WriteNoteFn: func(_ context.Context, rec *notegrab.NoteRecord) error {
				calledWith = rec
				return nil
			},
		}

		rec := &notegrab.NoteRecord{SourceURL: "https://example.com/explore/1"}
		err := w.WriteNote(context.Background(), rec)

		require.NoError(t, err)
		assert.Same(t, rec, calledWith)
	})

	t.Run("returns error from WriteNoteFn", func(t *testing.T) {
		t.Parallel()

		w := &mock.NoteWriter{
			WriteNoteFn: func(_ context.Context, _ *notegrab.NoteRecord) error {
				return errors.New("disk full")
			},
		}

		err := w.WriteNote(context.Background(), &notegrab.NoteRecord{})

		require.EqualError(t, err, "disk full")
	})
}
