package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/notegrab/mock"
	ngslog "github.com/fwojciec/notegrab/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := ngslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://example.com/explore/1")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://example.com/explore/1")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := ngslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/explore/1")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "err=\"network error\"")
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("delegates to inner fetcher", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		closeCalled := false
		inner := &mock.Fetcher{
			CloseFn: func() error {
				closeCalled = true
				return nil
			},
		}

		fetcher := ngslog.NewLoggingFetcher(inner, logger)
		err := fetcher.Close()

		require.NoError(t, err)
		assert.True(t, closeCalled)
	})
}

func TestLoggingResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("logs the redirect target", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.LinkResolver{
			ResolveFn: func(ctx context.Context, shortURL string) (string, error) {
				return "https://example.com/discovery/item/1", nil
			},
		}

		resolver := ngslog.NewLoggingResolver(inner, logger)
		target, err := resolver.Resolve(context.Background(), "https://xhslink.com/a/1")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/discovery/item/1", target)
		output := buf.String()
		assert.Contains(t, output, "resolve")
		assert.Contains(t, output, "url=https://xhslink.com/a/1")
		assert.Contains(t, output, "target=https://example.com/discovery/item/1")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.LinkResolver{
			ResolveFn: func(ctx context.Context, shortURL string) (string, error) {
				return "", errors.New("no redirect")
			},
		}

		resolver := ngslog.NewLoggingResolver(inner, logger)
		_, err := resolver.Resolve(context.Background(), "https://xhslink.com/a/1")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"no redirect\"")
	})
}
