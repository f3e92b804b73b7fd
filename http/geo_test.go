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

func TestGeoService_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("returns location on success", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/example.com", r.URL.Path)
			w.Write([]byte(`{"status":"success","country":"Germany","countryCode":"DE","regionName":"Hessen","isp":"Hetzner Online"}`))
		}))
		defer srv.Close()

		svc := audithttp.NewGeoService(audithttp.WithGeoEndpoint(srv.URL))
		loc, err := svc.Lookup(context.Background(), siteaudit.GeoRequest{Host: "example.com"})

		require.NoError(t, err)
		require.NotNil(t, loc)
		assert.Equal(t, "DE", loc.CountryCode)
		assert.Equal(t, "Germany", loc.Country)
		assert.Equal(t, "Hetzner Online", loc.ISP)
	})

	t.Run("provider fail status degrades to nil", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"fail","message":"private range"}`))
		}))
		defer srv.Close()

		svc := audithttp.NewGeoService(audithttp.WithGeoEndpoint(srv.URL))
		loc, err := svc.Lookup(context.Background(), siteaudit.GeoRequest{Host: "localhost"})

		require.NoError(t, err)
		assert.Nil(t, loc)
	})

	t.Run("network failure degrades to nil", func(t *testing.T) {
		t.Parallel()

		svc := audithttp.NewGeoService(audithttp.WithGeoEndpoint("http://127.0.0.1:1"))
		loc, err := svc.Lookup(context.Background(), siteaudit.GeoRequest{Host: "example.com"})

		require.NoError(t, err)
		assert.Nil(t, loc)
	})

	t.Run("malformed body degrades to nil", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		svc := audithttp.NewGeoService(audithttp.WithGeoEndpoint(srv.URL))
		loc, err := svc.Lookup(context.Background(), siteaudit.GeoRequest{Host: "example.com"})

		require.NoError(t, err)
		assert.Nil(t, loc)
	})
}
