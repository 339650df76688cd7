package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/notegrab"
)

// Ensure LoggingParser implements notegrab.Parser.
var _ notegrab.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with debug logging. Failures are logged
// with their error code so extraction stages can be told apart.
type LoggingParser struct {
	next   notegrab.Parser
	logger *slog.Logger
	name   string
}

// NewLoggingParser creates a new LoggingParser. The name labels which
// parser produced each log line.
func NewLoggingParser(next notegrab.Parser, logger *slog.Logger, name string) *LoggingParser {
	return &LoggingParser{next: next, logger: logger, name: name}
}

// Parse delegates to the wrapped parser and logs the outcome.
func (p *LoggingParser) Parse(html string) (note *notegrab.Note, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"parser", p.name,
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", notegrab.ErrorCode(err), "err", err)
		} else {
			attrs = append(attrs, "type", note.Type, "media", len(note.Media()))
		}
		p.logger.Info("parse", attrs...)
	}(time.Now())
	return p.next.Parse(html)
}
