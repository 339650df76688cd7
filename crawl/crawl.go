// Package crawl grabs notes from lists of links. It resolves share short
// links, fetches pages politely with retries, parses them with the page
// state parser (falling back to meta tags for share pages) and hands the
// resulting records to storage and export.
package crawl

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/notegrab"
	"github.com/fwojciec/notegrab/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of links processed at once.
const DefaultConcurrency = 3

// Grabber turns note links into stored note records.
type Grabber struct {
	Resolver notegrab.LinkResolver

	// Fetcher loads pages with the mobile profile. DesktopFetcher loads
	// share pages; Fetcher is used when it is nil.
	Fetcher        notegrab.Fetcher
	DesktopFetcher notegrab.Fetcher

	Parser notegrab.Parser

	// MetaParser reads meta tags on share pages, to fill a missing video
	// URL or to stand in when Parser fails. Nil disables it.
	MetaParser notegrab.Parser

	// Notes and Writer receive each grabbed record when set.
	Notes  notegrab.NoteService
	Writer notegrab.NoteWriter

	// Stored holds the source URLs already in Notes, see LoadStored.
	// A link it matches is confirmed against Notes and skipped. Nil
	// grabs every link.
	Stored *bloom.Filter

	RateLimiter notegrab.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
	Log         LogFunc
	Now         func() time.Time
}

// Outcome is the result of grabbing one input link.
type Outcome struct {
	Position  int
	URL       string
	Record    *notegrab.NoteRecord
	Duplicate bool
	Stored    bool
	Err       error
}

// Result holds the outcome of a batch, in input order.
type Result struct {
	Outcomes   []Outcome
	Grabbed    int
	Failed     int
	Duplicates int
	Stored     int
	Bytes      int
}

// Records returns the grabbed records in input order.
func (r *Result) Records() []*notegrab.NoteRecord {
	var recs []*notegrab.NoteRecord
	for _, o := range r.Outcomes {
		if o.Record != nil {
			recs = append(recs, o.Record)
		}
	}
	return recs
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressDuplicate
	ProgressStored
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// target is a link ready to fetch.
type target struct {
	url  string
	kind notegrab.LinkKind
}

type grabResult struct {
	position  int
	url       string
	record    *notegrab.NoteRecord
	bytes     int
	duplicate bool
	stored    bool
	err       error
}

// Grab fetches and parses the note behind a single link.
// The record is not stored or written.
func (g *Grabber) Grab(ctx context.Context, rawURL string) (*notegrab.NoteRecord, error) {
	t, err := g.resolve(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	rec, _, err := g.grabPage(ctx, t)
	return rec, err
}

// GrabAll grabs every link concurrently. Links naming a note already seen
// in the batch are reported as duplicates and fetched once; links already
// in Stored are reported as stored and not fetched. Per-link failures are
// recorded in the result; only context cancellation aborts the batch.
func (g *Grabber) GrabAll(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	concurrency := g.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	seen := newKeySet(len(urls))

	// Links that need no network round trip are deduplicated up front, in
	// input order, so the first occurrence always wins.
	planned := make([]*target, len(urls))
	duplicate := make([]bool, len(urls))
	for i, raw := range urls {
		if notegrab.IsShortLink(raw) {
			continue
		}
		t := plan(raw)
		planned[i] = &t
		duplicate[i] = seen.seen(dedupeKey(t.url))
	}

	resultCh := make(chan grabResult, len(urls))
	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	go func() {
		for i, raw := range urls {
			i, raw := i, raw
			eg.Go(func() error {
				resultCh <- g.process(gctx, i, raw, planned[i], duplicate[i], seen)
				return nil
			})
		}
		_ = eg.Wait()
		close(resultCh)
	}()

	result := &Result{Outcomes: make([]Outcome, len(urls))}
	for r := range resultCh {
		completed.Add(1)
		result.Outcomes[r.position] = Outcome{
			Position:  r.position,
			URL:       r.url,
			Record:    r.record,
			Duplicate: r.duplicate,
			Stored:    r.stored,
			Err:       r.err,
		}
		result.Bytes += r.bytes

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			URL:       r.url,
		}
		switch {
		case r.err != nil:
			event.Type = ProgressFailed
			event.Error = r.err
		case r.duplicate:
			event.Type = ProgressDuplicate
		case r.stored:
			event.Type = ProgressStored
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Store and export in input order.
	for i := range result.Outcomes {
		o := &result.Outcomes[i]
		switch {
		case o.Duplicate:
			result.Duplicates++
			continue
		case o.Stored:
			result.Stored++
			continue
		case o.Err != nil:
			result.Failed++
			continue
		}

		if err := g.save(ctx, o.Record); err != nil {
			o.Err = err
			o.Record = nil
			result.Failed++
			continue
		}
		result.Grabbed++
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return result, nil
}

// process grabs a single link of a batch. t is nil for short links, which
// are resolved and deduplicated here.
func (g *Grabber) process(ctx context.Context, position int, raw string, t *target, dup bool, seen *keySet) grabResult {
	result := grabResult{position: position, url: raw}

	if t == nil {
		resolved, err := g.resolve(ctx, raw)
		if err != nil {
			result.err = err
			return result
		}
		t = &resolved
		dup = seen.seen(dedupeKey(t.url))
	}
	if dup {
		result.duplicate = true
		return result
	}
	if g.isStored(ctx, t.url) {
		result.stored = true
		return result
	}

	result.record, result.bytes, result.err = g.grabPage(ctx, *t)
	return result
}

// plan normalizes a link that does not need redirect resolution.
func plan(raw string) target {
	u := notegrab.NormalizeInputURL(raw)
	return target{
		url:  notegrab.CleanShareURL(u),
		kind: notegrab.ClassifyLink(u),
	}
}

// resolve turns any input link into a fetchable target. Short links keep
// their kind after resolution and are fetched with the mobile profile.
func (g *Grabber) resolve(ctx context.Context, raw string) (target, error) {
	if !notegrab.IsShortLink(raw) {
		return plan(raw), nil
	}
	if g.Resolver == nil {
		return target{}, notegrab.Errorf(notegrab.EINVALID, "cannot resolve short link %s: no resolver", raw)
	}

	short := notegrab.NormalizeInputURL(raw)
	if err := g.wait(ctx, short); err != nil {
		return target{}, err
	}
	full, err := FetchWithRetryDelays(ctx, short, g.Resolver.Resolve, g.Log, g.retryDelays())
	if err != nil {
		return target{}, err
	}
	return target{
		url:  notegrab.CleanShareURL(full),
		kind: notegrab.LinkShort,
	}, nil
}

// grabPage fetches and parses one note page.
func (g *Grabber) grabPage(ctx context.Context, t target) (*notegrab.NoteRecord, int, error) {
	fetcher := g.Fetcher
	if t.kind.UsesDesktopProfile() && g.DesktopFetcher != nil {
		fetcher = g.DesktopFetcher
	}

	if err := g.wait(ctx, t.url); err != nil {
		return nil, 0, err
	}
	html, err := FetchWithRetryDelays(ctx, t.url, fetcher.Fetch, g.Log, g.retryDelays())
	if err != nil {
		return nil, 0, err
	}

	note, err := g.Parser.Parse(html)
	if t.kind.UsesDesktopProfile() && g.MetaParser != nil {
		note, err = Supplement(g.MetaParser, html, note, err)
	}
	if err != nil {
		return nil, len(html), err
	}

	return &notegrab.NoteRecord{
		SourceURL: t.url,
		PageHash:  ComputeHash(html),
		FetchedAt: g.now(),
		Note:      *note,
	}, len(html), nil
}

// Supplement applies the meta tags of a page through meta: they fill a
// missing video URL, or replace the note entirely when the page state
// failed with stateErr. The state error is kept when the meta tags carry
// nothing either.
func Supplement(meta notegrab.Parser, html string, note *notegrab.Note, stateErr error) (*notegrab.Note, error) {
	if stateErr != nil {
		fallback, err := meta.Parse(html)
		if err != nil {
			return nil, stateErr
		}
		return fallback, nil
	}

	if note.IsVideo() && note.VideoURL == "" {
		if fallback, err := meta.Parse(html); err == nil && fallback.VideoURL != "" {
			note.VideoURL = notegrab.UpgradeScheme(fallback.VideoURL)
		}
	}
	return note, nil
}

func (g *Grabber) save(ctx context.Context, rec *notegrab.NoteRecord) error {
	if g.Notes != nil {
		if err := g.Notes.CreateNote(ctx, rec); err != nil {
			return err
		}
	}
	if g.Writer != nil {
		if err := g.Writer.WriteNote(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (g *Grabber) wait(ctx context.Context, url string) error {
	if g.RateLimiter == nil {
		return nil
	}
	return g.RateLimiter.Wait(ctx, Domain(url))
}

func (g *Grabber) retryDelays() []time.Duration {
	if g.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return g.RetryDelays
}

func (g *Grabber) now() time.Time {
	if g.Now != nil {
		return g.Now().UTC()
	}
	return time.Now().UTC()
}

// isStored reports whether Notes already holds a record for url. Stored
// only narrows the lookup; a match is confirmed with a query so a filter
// false positive never skips a new note.
func (g *Grabber) isStored(ctx context.Context, url string) bool {
	if g.Stored == nil || g.Notes == nil || !g.Stored.Test(url) {
		return false
	}
	recs, err := g.Notes.FindNotes(ctx, notegrab.NoteFilter{SourceURL: &url, Limit: 1})
	if err != nil {
		if g.Log != nil {
			g.Log("checking stored note %s: %v", url, err)
		}
		return false
	}
	return len(recs) > 0
}

// keySet records the notes seen in a batch. It is safe for concurrent use.
type keySet struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newKeySet(n int) *keySet {
	return &keySet{keys: make(map[string]struct{}, n)}
}

// seen records key and reports whether it was recorded before.
func (s *keySet) seen(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[key]; ok {
		return true
	}
	s.keys[key] = struct{}{}
	return false
}

// dedupeKey identifies the note a URL points at.
func dedupeKey(url string) string {
	if id := notegrab.NoteIDFromURL(url); id != "" {
		return id
	}
	return url
}
