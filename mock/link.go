package mock

import (
	"context"

	"github.com/fwojciec/notegrab"
)

var _ notegrab.LinkResolver = (*LinkResolver)(nil)

// LinkResolver is a mock implementation of notegrab.LinkResolver.
type LinkResolver struct {
	ResolveFn func(ctx context.Context, shortURL string) (string, error)
}

func (r *LinkResolver) Resolve(ctx context.Context, shortURL string) (string, error) {
	return r.ResolveFn(ctx, shortURL)
}
