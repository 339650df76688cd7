// Package http provides HTTP implementations of notegrab.Fetcher and
// notegrab.LinkResolver for note pages, which are served without
// JavaScript rendering.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/notegrab"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements notegrab.Fetcher at compile time.
var _ notegrab.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves note page HTML using plain HTTP requests, presenting
// the headers of its profile.
type Fetcher struct {
	client  *http.Client
	profile notegrab.HeaderProfile
}

// Option configures a Fetcher or a LinkResolver.
type Option func(*options)

type options struct {
	timeout time.Duration
	profile notegrab.HeaderProfile
}

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithProfile sets the request headers.
// Defaults to notegrab.MobileProfile.
func WithProfile(p notegrab.HeaderProfile) Option {
	return func(o *options) {
		o.profile = p
	}
}

func newOptions(opts []Option) options {
	o := options{
		timeout: DefaultFetchTimeout,
		profile: notegrab.MobileProfile(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	o := newOptions(opts)
	return &Fetcher{
		client:  &http.Client{Timeout: o.timeout},
		profile: o.profile,
	}
}

// Profile returns the header profile the fetcher presents.
func (f *Fetcher) Profile() notegrab.HeaderProfile {
	return f.profile
}

// Fetch retrieves the HTML content from the given URL.
// Returns ENETWORK for any status other than 200 OK.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := newRequest(ctx, url, f.profile)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", notegrab.Errorf(notegrab.ENETWORK, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func newRequest(ctx context.Context, url string, profile notegrab.HeaderProfile) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, notegrab.Errorf(notegrab.EINVALID, "invalid URL %q: %v", url, err)
	}
	for k, v := range profile.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}
