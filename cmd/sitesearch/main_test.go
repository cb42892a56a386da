package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	main "github.com/fwojciec/sitesearch/cmd/sitesearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postHTML = `<!DOCTYPE html>
<html>
<body>
<div id="content">
	<div class="post-title"><a href="/a.html">Hello World</a></div>
	<div class="post-date">2024-01-15</div>
	<h1>Hello World</h1>
	<p>An opening paragraph about nothing much at all.</p>
	<h2 id="usage">Usage</h2>
	<p>You can find the search term here among other words.</p>
	<div class="postamble">generated</div>
</div>
</body>
</html>`

func newTestSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/manifest.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["a.html"]`))
	})
	mux.HandleFunc("/a.html", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(postHTML))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCmdSearch(t *testing.T) {
	t.Parallel()

	t.Run("finds and highlights a body match with its anchor", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"search", srv.URL + "/manifest.json", "search", "term"}, stdout, stderr)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Hello World") // title unhighlighted, no match there
		assert.Contains(t, out, "<mark>search term</mark>")
		assert.Contains(t, out, srv.URL+"/a.html#usage")
	})

	t.Run("short query shows original content signal", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"search", srv.URL + "/manifest.json", "a"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "too short")
		assert.NotContains(t, stdout.String(), "<mark>")
	})

	t.Run("no match reports no results", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"search", srv.URL + "/manifest.json", "kubernetes"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No results found.")
	})

	t.Run("manifest failure degrades to no results", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		t.Cleanup(srv.Close)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"search", srv.URL + "/manifest.json", "anything"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No results found.")
		assert.Contains(t, stderr.String(), "warning:")
	})
}

func TestCmdList(t *testing.T) {
	t.Parallel()

	t.Run("lists indexed documents", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"list", srv.URL + "/manifest.json"}, stdout, stderr)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, srv.URL+"/a.html")
		assert.Contains(t, out, "Hello World")
		assert.Contains(t, out, "2 headers")
	})
}

func TestCmdNoArgs(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), nil, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}
