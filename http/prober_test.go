package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dochttp "github.com/fwojciec/docask/http"
	"github.com/stretchr/testify/assert"
)

func TestProber_Accessible(t *testing.T) {
	t.Parallel()

	t.Run("returns true for 200 response to HEAD", func(t *testing.T) {
		t.Parallel()

		var method string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		prober := dochttp.NewProber()

		assert.True(t, prober.Accessible(context.Background(), server.URL))
		assert.Equal(t, http.MethodHead, method)
	})

	t.Run("returns false for non-200 status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		prober := dochttp.NewProber()

		assert.False(t, prober.Accessible(context.Background(), server.URL))
	})

	t.Run("returns false on timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		prober := dochttp.NewProber(dochttp.WithProbeTimeout(10 * time.Millisecond))

		assert.False(t, prober.Accessible(context.Background(), server.URL))
	})

	t.Run("returns false for invalid URL", func(t *testing.T) {
		t.Parallel()

		prober := dochttp.NewProber()

		assert.False(t, prober.Accessible(context.Background(), "not a url"))
	})

	t.Run("returns false when robots.txt disallows the path", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
		})
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		prober := dochttp.NewProber(dochttp.WithRobots(true))

		assert.False(t, prober.Accessible(context.Background(), server.URL+"/private/page"))
		assert.True(t, prober.Accessible(context.Background(), server.URL+"/docs/page"))
	})

	t.Run("ignores robots.txt unless enabled", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /\n"))
		})
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		prober := dochttp.NewProber()

		assert.True(t, prober.Accessible(context.Background(), server.URL+"/docs"))
	})
}
