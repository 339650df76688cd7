package notegrab

import (
	"context"
	"time"
)

// NoteRecord is a grabbed note together with where and when it was fetched.
type NoteRecord struct {
	ID        string    `json:"id"`
	SourceURL string    `json:"sourceUrl"`
	PageHash  string    `json:"pageHash"`
	FetchedAt time.Time `json:"fetchedAt"`
	Note      Note      `json:"note"`
}

// Validate returns an error if the record contains invalid fields.
func (r *NoteRecord) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "note source URL required")
	}
	if r.Note.Type == "" {
		return Errorf(EINVALID, "note type required")
	}
	return nil
}

// NoteService represents a service for managing grabbed notes.
type NoteService interface {
	// CreateNote stores a new note record and assigns its ID.
	CreateNote(ctx context.Context, rec *NoteRecord) error

	// FindNoteByID retrieves a note record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindNoteByID(ctx context.Context, id string) (*NoteRecord, error)

	// FindNotes retrieves note records matching the filter,
	// most recently fetched first.
	FindNotes(ctx context.Context, filter NoteFilter) ([]*NoteRecord, error)

	// DeleteNote permanently removes a note record.
	// Returns ENOTFOUND if the record does not exist.
	DeleteNote(ctx context.Context, id string) error
}

// NoteFilter represents a filter for FindNotes.
type NoteFilter struct {
	ID        *string   `json:"id"`
	SourceURL *string   `json:"sourceUrl"`
	AuthorID  *string   `json:"authorId"`
	Type      *NoteType `json:"type"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// NoteWriter writes note records to an export destination.
type NoteWriter interface {
	WriteNote(ctx context.Context, rec *NoteRecord) error
}
