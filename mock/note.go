package mock

import (
	"context"

	"github.com/fwojciec/notegrab"
)

var _ notegrab.NoteService = (*NoteService)(nil)

// NoteService is a mock implementation of notegrab.NoteService.
type NoteService struct {
	CreateNoteFn   func(ctx context.Context, rec *notegrab.NoteRecord) error
	FindNoteByIDFn func(ctx context.Context, id string) (*notegrab.NoteRecord, error)
	FindNotesFn    func(ctx context.Context, filter notegrab.NoteFilter) ([]*notegrab.NoteRecord, error)
	DeleteNoteFn   func(ctx context.Context, id string) error
}

func (s *NoteService) CreateNote(ctx context.Context, rec *notegrab.NoteRecord) error {
	return s.CreateNoteFn(ctx, rec)
}

func (s *NoteService) FindNoteByID(ctx context.Context, id string) (*notegrab.NoteRecord, error) {
	return s.FindNoteByIDFn(ctx, id)
}

func (s *NoteService) FindNotes(ctx context.Context, filter notegrab.NoteFilter) ([]*notegrab.NoteRecord, error) {
	return s.FindNotesFn(ctx, filter)
}

func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	return s.DeleteNoteFn(ctx, id)
}
