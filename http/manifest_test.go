package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/sitesearch"
	sshttp "github.com/fwojciec/sitesearch/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("parses a JSON URL array and resolves relative entries", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`["a.html", "posts/b.html", "https://other.example.com/c.html"]`))
		}))
		defer srv.Close()

		svc := sshttp.NewManifestService(nil)
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/manifest.json")

		require.NoError(t, err)
		require.Len(t, urls, 3)
		assert.Equal(t, srv.URL+"/a.html", urls[0])
		assert.Equal(t, srv.URL+"/posts/b.html", urls[1])
		assert.Equal(t, "https://other.example.com/c.html", urls[2])
	})

	t.Run("deduplicates entries preserving order", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`["a.html", "b.html", "a.html"]`))
		}))
		defer srv.Close()

		svc := sshttp.NewManifestService(nil)
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/manifest.json")

		require.NoError(t, err)
		require.Len(t, urls, 2)
		assert.Equal(t, srv.URL+"/a.html", urls[0])
		assert.Equal(t, srv.URL+"/b.html", urls[1])
	})

	t.Run("parses a sitemap urlset document", func(t *testing.T) {
		t.Parallel()

		sitemap := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<url><loc>https://example.com/a.html</loc></url>
	<url><loc> https://example.com/b.html </loc></url>
	<url></url>
</urlset>`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(sitemap))
		}))
		defer srv.Close()

		svc := sshttp.NewManifestService(nil)
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/a.html", "https://example.com/b.html"}, urls)
	})

	t.Run("rejects a manifest that is neither JSON nor sitemap", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not a manifest`))
		}))
		defer srv.Close()

		svc := sshttp.NewManifestService(nil)
		_, err := svc.DiscoverURLs(context.Background(), srv.URL+"/manifest.json")

		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})

	t.Run("rejects XML without a urlset root", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<feed><entry>x</entry></feed>`))
		}))
		defer srv.Close()

		svc := sshttp.NewManifestService(nil)
		_, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml")

		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})

	t.Run("non-200 status is EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		svc := sshttp.NewManifestService(nil)
		_, err := svc.DiscoverURLs(context.Background(), srv.URL+"/manifest.json")

		require.Error(t, err)
		assert.Equal(t, sitesearch.EUNAVAILABLE, sitesearch.ErrorCode(err))
	})

	t.Run("canceled context returns immediately", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		svc := sshttp.NewManifestService(nil)
		_, err := svc.DiscoverURLs(ctx, "https://example.com/manifest.json")

		assert.Error(t, err)
	})
}
