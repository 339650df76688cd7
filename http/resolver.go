package http

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fwojciec/notegrab"
)

// Ensure LinkResolver implements notegrab.LinkResolver at compile time.
var _ notegrab.LinkResolver = (*LinkResolver)(nil)

// LinkResolver expands share short links by reading the Location header of
// their redirect response without following it.
type LinkResolver struct {
	client  *http.Client
	profile notegrab.HeaderProfile
}

// NewLinkResolver creates a new LinkResolver.
// It presents the mobile profile unless configured otherwise.
func NewLinkResolver(opts ...Option) *LinkResolver {
	o := newOptions(opts)
	return &LinkResolver{
		client: &http.Client{
			Timeout: o.timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		profile: o.profile,
	}
}

// Resolve returns the percent-decoded redirect target of shortURL.
// Returns ENETWORK unless the response is a 302 with a Location header.
func (r *LinkResolver) Resolve(ctx context.Context, shortURL string) (string, error) {
	req, err := newRequest(ctx, shortURL, r.profile)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		return "", notegrab.Errorf(notegrab.ENETWORK, "no redirect for %s: HTTP %d", shortURL, resp.StatusCode)
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", notegrab.Errorf(notegrab.ENETWORK, "no redirect for %s: empty Location", shortURL)
	}

	if decoded, err := url.PathUnescape(location); err == nil {
		location = decoded
	}
	return location, nil
}
