package notegrab

import "context"

// Fetcher retrieves note page HTML from URLs.
// Implementations supply the request headers; the engine never sees them.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// Returns ENETWORK if the response is not a success status.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
