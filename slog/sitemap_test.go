package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/docask/mock"
	dslog "github.com/fwojciec/docask/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("logs the pages found under the root", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := dslog.NewLoggingSitemapService(&mock.SitemapService{
			DiscoverURLsFn: func(context.Context, string) ([]string, error) {
				return []string{"https://docs.lytics.com/docs/audiences", "https://docs.lytics.com/docs/jobs"}, nil
			},
		}, slog.New(slog.NewTextHandler(&buf, nil)))

		urls, err := svc.DiscoverURLs(context.Background(), "https://docs.lytics.com")

		require.NoError(t, err)
		assert.Len(t, urls, 2)
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "root=https://docs.lytics.com")
		assert.Contains(t, buf.String(), "pages=2")
		assert.Contains(t, buf.String(), "duration=")
	})

	t.Run("warns when nothing is found", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := dslog.NewLoggingSitemapService(&mock.SitemapService{
			DiscoverURLsFn: func(context.Context, string) ([]string, error) {
				return nil, nil
			},
		}, slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := svc.DiscoverURLs(context.Background(), "https://docs.zeotap.com/home/en-us")

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "pages=0")
	})

	t.Run("warns with the error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := dslog.NewLoggingSitemapService(&mock.SitemapService{
			DiscoverURLsFn: func(context.Context, string) ([]string, error) {
				return nil, errors.New("connection refused")
			},
		}, slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := svc.DiscoverURLs(context.Background(), "https://segment.com/docs")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), `err="connection refused"`)
	})
}
