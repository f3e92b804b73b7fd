package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/mkowalczyk/siteaudit"
)

// DefaultGeoEndpoint is the IP-geolocation provider endpoint. The hostname
// is appended as a path segment.
const DefaultGeoEndpoint = "http://ip-api.com/json"

// DefaultGeoTimeout is the request timeout for geo lookups.
const DefaultGeoTimeout = 8 * time.Second

// Ensure GeoService implements siteaudit.GeoService.
var _ siteaudit.GeoService = (*GeoService)(nil)

// GeoService resolves hostnames via an external IP-geolocation provider.
type GeoService struct {
	client   *http.Client
	endpoint string
}

// GeoOption configures a GeoService.
type GeoOption func(*GeoService)

// WithGeoEndpoint overrides the provider endpoint.
func WithGeoEndpoint(endpoint string) GeoOption {
	return func(s *GeoService) { s.endpoint = endpoint }
}

// NewGeoService creates a GeoService with defaults.
func NewGeoService(opts ...GeoOption) *GeoService {
	s := &GeoService{
		client:   &http.Client{Timeout: DefaultGeoTimeout},
		endpoint: DefaultGeoEndpoint,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// geoResponse mirrors the provider's wire format.
type geoResponse struct {
	Status      string `json:"status"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	RegionName  string `json:"regionName"`
	ISP         string `json:"isp"`
}

// Lookup resolves the host's location. Any failure (network, parse,
// non-success status field) returns (nil, nil): geo data is advisory only.
func (s *GeoService) Lookup(ctx context.Context, req siteaudit.GeoRequest) (*siteaudit.GeoLocation, error) {
	target := s.endpoint + "/" + url.PathEscape(req.Host) + "?fields=status,country,countryCode,regionName,isp"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, nil
	}
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var parsed geoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, nil
	}
	if parsed.Status != "success" {
		return nil, nil
	}

	return &siteaudit.GeoLocation{
		Country:     parsed.Country,
		CountryCode: parsed.CountryCode,
		Region:      parsed.RegionName,
		ISP:         parsed.ISP,
	}, nil
}
