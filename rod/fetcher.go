// Package rod provides a notegrab.Fetcher that loads note pages in headless
// Chrome, for pages that only carry their state after scripts run.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/notegrab"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxPages is the number of pages loaded before the browser is
// relaunched. Chrome memory grows steadily under load.
const DefaultMaxPages = 75

// Ensure Fetcher implements notegrab.Fetcher at compile time.
var _ notegrab.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation,
// presenting the user agent and headers of its profile.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	timeout  time.Duration
	profile  notegrab.HeaderProfile
	maxPages int64

	mu      sync.Mutex
	current *generation
	pages   atomic.Int64
	closed  atomic.Bool
}

// generation is one launched browser. A retired generation is shut down
// once its last in-flight page is released.
type generation struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	active   int
	retired  bool
}

func (g *generation) shutdown() error {
	err := g.browser.Close()
	g.launcher.Kill()
	return err
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for a single page load.
// Defaults to DefaultFetchTimeout (10s).
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithProfile sets the user agent and extra request headers.
// Defaults to notegrab.MobileProfile.
func WithProfile(p notegrab.HeaderProfile) Option {
	return func(f *Fetcher) {
		f.profile = p
	}
}

// WithMaxPages sets the number of pages loaded before the browser is
// relaunched. Defaults to DefaultMaxPages.
func WithMaxPages(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		profile:  notegrab.MobileProfile(),
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	if err := f.launch(); err != nil {
		return nil, err
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", notegrab.Errorf(notegrab.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	gen, err := f.acquire()
	if err != nil {
		return "", err
	}
	defer f.release(gen)

	page, err := gen.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	defer f.pages.Add(1)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      f.profile.UserAgent(),
		AcceptLanguage: f.profile.Headers["Accept-Language"],
	}); err != nil {
		return "", err
	}

	var extra []string
	for k, v := range f.profile.Headers {
		if k == "User-Agent" || k == "Accept-Language" {
			continue
		}
		extra = append(extra, k, v)
	}
	if len(extra) > 0 {
		cleanup, err := page.SetExtraHeaders(extra)
		if err != nil {
			return "", err
		}
		defer cleanup()
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	return page.HTML()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current == nil {
		return nil
	}
	err := f.current.shutdown()
	f.current = nil
	return err
}

// LauncherPID returns the process ID of the browser launcher, or 0 once
// closed.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current == nil {
		return 0
	}
	return f.current.launcher.PID()
}

// acquire returns the live browser generation and counts a page against
// it. Once maxPages pages have been loaded a new browser is launched and
// the old one is retired; a failed relaunch keeps the old browser.
func (f *Fetcher) acquire() (*generation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current == nil {
		return nil, notegrab.Errorf(notegrab.EINVALID, "fetcher is closed")
	}

	if f.maxPages > 0 && f.pages.Load() >= f.maxPages {
		if next, err := launchGeneration(); err == nil {
			old := f.current
			old.retired = true
			if old.active == 0 {
				_ = old.shutdown()
			}
			f.current = next
			f.pages.Store(0)
		}
	}

	f.current.active++
	return f.current, nil
}

// release ends a page on gen, shutting gen down if it was retired and
// this was its last page.
func (f *Fetcher) release(gen *generation) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gen.active--
	if gen.retired && gen.active == 0 {
		_ = gen.shutdown()
	}
}

func (f *Fetcher) launch() error {
	gen, err := launchGeneration()
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = gen
	return nil
}

// launchGeneration starts a browser with flags that keep background pages
// responsive.
func launchGeneration() (*generation, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &generation{browser: browser, launcher: l}, nil
}
