package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkowalczyk/siteaudit"
	audithttp "github.com/mkowalczyk/siteaudit/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRobotsService_FetchRobots(t *testing.T) {
	t.Parallel()

	t.Run("parses directives and sitemap URLs", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/robots.txt", r.URL.Path)
			w.Write([]byte("User-agent: *\nDisallow: /private/\n\nSitemap: https://example.com/sitemap.xml\nsitemap: https://example.com/news.xml\n"))
		}))
		defer srv.Close()

		svc := audithttp.NewRobotsService()
		robots, err := svc.FetchRobots(context.Background(), siteaudit.RobotsRequest{Origin: srv.URL, Path: "/about"})

		require.NoError(t, err)
		assert.True(t, robots.Found)
		assert.True(t, robots.PathAllowed)
		assert.Equal(t, []string{
			"https://example.com/sitemap.xml",
			"https://example.com/news.xml",
		}, robots.SitemapURLs, "directive matching is case-insensitive")
	})

	t.Run("reports disallowed paths", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
		}))
		defer srv.Close()

		svc := audithttp.NewRobotsService()
		robots, err := svc.FetchRobots(context.Background(), siteaudit.RobotsRequest{Origin: srv.URL, Path: "/private/page"})

		require.NoError(t, err)
		assert.True(t, robots.Found)
		assert.False(t, robots.PathAllowed)
	})

	t.Run("missing robots.txt degrades to absent", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		svc := audithttp.NewRobotsService()
		robots, err := svc.FetchRobots(context.Background(), siteaudit.RobotsRequest{Origin: srv.URL, Path: "/"})

		require.NoError(t, err)
		assert.False(t, robots.Found)
		assert.True(t, robots.PathAllowed, "absent robots.txt allows everything")
	})

	t.Run("network failure degrades to absent", func(t *testing.T) {
		t.Parallel()

		svc := audithttp.NewRobotsService()
		robots, err := svc.FetchRobots(context.Background(), siteaudit.RobotsRequest{Origin: "http://127.0.0.1:1", Path: "/"})

		require.NoError(t, err)
		assert.False(t, robots.Found)
		assert.True(t, robots.PathAllowed)
	})

	t.Run("cancellation propagates as an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		svc := audithttp.NewRobotsService()
		_, err := svc.FetchRobots(ctx, siteaudit.RobotsRequest{Origin: srv.URL, Path: "/"})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
