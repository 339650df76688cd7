package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/notegrab"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ notegrab.NoteService = (*NoteService)(nil)

// NoteService implements notegrab.NoteService using SQLite.
// Gallery image URLs live in note_images, one row per image in order.
type NoteService struct {
	db *DB
}

// NewNoteService creates a new NoteService.
func NewNoteService(db *DB) *NoteService {
	return &NoteService{db: db}
}

const noteColumns = `id, source_url, page_hash, fetched_at, type, title, description,
	author_name, author_id, publish_time, video_url`

// CreateNote stores a note record and assigns it a new ID. A zero
// FetchedAt is set to the current time.
func (s *NoteService) CreateNote(ctx context.Context, rec *notegrab.NoteRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	if rec.FetchedAt.IsZero() {
		rec.FetchedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	n := rec.Note
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO notes (`+noteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SourceURL, rec.PageHash, rec.FetchedAt.UTC().Format(time.RFC3339),
		string(n.Type), n.Title, n.Desc, n.AuthorName, n.AuthorID, n.PublishTime, n.VideoURL); err != nil {
		return err
	}

	for i, u := range n.ImageURLs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO note_images (note_id, position, url) VALUES (?, ?, ?)",
			rec.ID, i, u); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindNoteByID retrieves a note record by ID.
func (s *NoteService) FindNoteByID(ctx context.Context, id string) (*notegrab.NoteRecord, error) {
	recs, err := s.FindNotes(ctx, notegrab.NoteFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, notegrab.Errorf(notegrab.ENOTFOUND, "note not found")
	}
	return recs[0], nil
}

// FindNotes retrieves note records matching the filter, most recently
// fetched first.
func (s *NoteService) FindNotes(ctx context.Context, filter notegrab.NoteFilter) ([]*notegrab.NoteRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + noteColumns + " FROM notes WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.AuthorID != nil {
		query.WriteString(" AND author_id = ?")
		args = append(args, *filter.AuthorID)
	}
	if filter.Type != nil {
		query.WriteString(" AND type = ?")
		args = append(args, string(*filter.Type))
	}

	query.WriteString(" ORDER BY fetched_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*notegrab.NoteRecord
	for rows.Next() {
		rec, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Release the single connection before querying images.
	rows.Close()

	for _, rec := range recs {
		if rec.Note.ImageURLs, err = s.findImages(ctx, rec.ID); err != nil {
			return nil, err
		}
	}

	return recs, nil
}

// DeleteNote permanently removes a note record and its images.
func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return notegrab.Errorf(notegrab.ENOTFOUND, "note not found")
	}

	return nil
}

func scanNote(rows *sql.Rows) (*notegrab.NoteRecord, error) {
	var rec notegrab.NoteRecord
	var fetchedAt, noteType string
	n := &rec.Note

	if err := rows.Scan(&rec.ID, &rec.SourceURL, &rec.PageHash, &fetchedAt, &noteType,
		&n.Title, &n.Desc, &n.AuthorName, &n.AuthorID, &n.PublishTime, &n.VideoURL); err != nil {
		return nil, err
	}
	n.Type = notegrab.NoteType(noteType)

	var err error
	if rec.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *NoteService) findImages(ctx context.Context, noteID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT url FROM note_images WHERE note_id = ? ORDER BY position", noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := []string{}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}
