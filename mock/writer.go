package mock

import (
	"context"

	"github.com/fwojciec/notegrab"
)

var _ notegrab.NoteWriter = (*NoteWriter)(nil)

// NoteWriter is a mock implementation of notegrab.NoteWriter.
type NoteWriter struct {
	WriteNoteFn func(ctx context.Context, rec *notegrab.NoteRecord) error
}

func (w *NoteWriter) WriteNote(ctx context.Context, rec *notegrab.NoteRecord) error {
	return w.WriteNoteFn(ctx, rec)
}
