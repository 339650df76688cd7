package crawl

import (
	"context"

	"github.com/fwojciec/notegrab"
	"github.com/fwojciec/notegrab/bloom"
)

// Stored filter sizing.
const (
	storedPageSize          = 500
	storedMinKeys           = 1024
	storedFalsePositiveRate = 0.001
)

// LoadStored reads every source URL held by notes into a filter for
// Grabber.Stored.
func LoadStored(ctx context.Context, notes notegrab.NoteService) (*bloom.Filter, error) {
	var urls []string
	for offset := 0; ; offset += storedPageSize {
		recs, err := notes.FindNotes(ctx, notegrab.NoteFilter{Offset: offset, Limit: storedPageSize})
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			urls = append(urls, rec.SourceURL)
		}
		if len(recs) < storedPageSize {
			break
		}
	}

	f := bloom.NewFilter(uint(max(len(urls), storedMinKeys)), storedFalsePositiveRate)
	for _, u := range urls {
		f.Add(u)
	}
	return f, nil
}
