package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/notegrab"
)

// Ensure NoteStore implements notegrab.NoteWriter at compile time.
var _ notegrab.NoteWriter = (*NoteStore)(nil)

// NoteStore stages a batch of notes and publishes them all at once.
// Notes are written to baseDir/name.tmp and moved to baseDir/name on Commit.
type NoteStore struct {
	baseDir string
	name    string
	w       *Writer
}

// NewNoteStore creates a new NoteStore.
func NewNoteStore(baseDir, name string) *NoteStore {
	s := &NoteStore{
		baseDir: baseDir,
		name:    name,
	}
	s.w = NewWriter(s.tempDir())
	return s
}

func (s *NoteStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *NoteStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Dir returns the directory notes are published to.
func (s *NoteStore) Dir() string {
	return s.finalDir()
}

// WriteNote stages a record in the temporary directory.
func (s *NoteStore) WriteNote(ctx context.Context, rec *notegrab.NoteRecord) error {
	return s.w.WriteNote(ctx, rec)
}

// Commit replaces the final directory with the staged notes.
func (s *NoteStore) Commit() error {
	if _, err := os.Stat(s.tempDir()); os.IsNotExist(err) {
		if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
			return err
		}
	}

	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the staged notes.
func (s *NoteStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
