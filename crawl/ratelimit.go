package crawl

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/notegrab"
	"golang.org/x/time/rate"
)

var _ notegrab.DomainLimiter = (*DomainLimiter)(nil)

// DefaultRequestsPerSecond is the default request rate per host. The site
// throttles aggressive clients, so batches stay polite.
const DefaultRequestsPerSecond = 1.0

// DomainLimiter provides per-domain rate limiting using token buckets.
// Short-link hosts and note hosts get separate buckets, so resolving the
// next link overlaps with fetching the previous page.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a new DomainLimiter with the specified requests per second limit.
// Each domain gets its own limiter with a burst of 1 (no bursting allowed).
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// Domain returns the host of rawURL, or rawURL itself if it has none.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
