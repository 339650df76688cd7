package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/notegrab"
)

// Ensure LoggingNoteWriter implements notegrab.NoteWriter.
var _ notegrab.NoteWriter = (*LoggingNoteWriter)(nil)

// LoggingNoteWriter wraps a NoteWriter with debug logging.
type LoggingNoteWriter struct {
	next   notegrab.NoteWriter
	logger *slog.Logger
}

// NewLoggingNoteWriter creates a new LoggingNoteWriter.
func NewLoggingNoteWriter(next notegrab.NoteWriter, logger *slog.Logger) *LoggingNoteWriter {
	return &LoggingNoteWriter{next: next, logger: logger}
}

// WriteNote delegates to the wrapped writer and logs the operation.
func (w *LoggingNoteWriter) WriteNote(ctx context.Context, rec *notegrab.NoteRecord) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write note",
			"url", rec.SourceURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteNote(ctx, rec)
}
