package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	audithttp "github.com/mkowalczyk/siteaudit/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProber_Probe(t *testing.T) {
	t.Parallel()

	t.Run("returns the response status for HEAD", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodHead, r.Method)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		p := audithttp.NewProber()
		status, err := p.Probe(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, status)
	})

	t.Run("returns zero status on transport error", func(t *testing.T) {
		t.Parallel()

		p := audithttp.NewProber()
		status, err := p.Probe(context.Background(), "http://127.0.0.1:1/")

		require.Error(t, err)
		assert.Zero(t, status)
	})

	t.Run("respects cancellation while rate limited", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := audithttp.NewProber(audithttp.WithProbeRate(0.001))
		_, err := p.Probe(ctx, "http://example.com/")

		assert.Error(t, err)
	})
}
