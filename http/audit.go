// Package http provides HTTP-based implementations of the siteaudit fetch
// layer: the performance-audit provider, the target site's HTML, robots.txt
// and sitemap, the IP-geolocation provider, and the link prober.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mkowalczyk/siteaudit"
)

// userAgent identifies the engine to the sites and providers it calls.
const userAgent = "siteaudit/1.0"

// DefaultAuditEndpoint is the performance-audit provider endpoint.
const DefaultAuditEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// DefaultAuditTimeout is the request-level timeout for audit fetches.
// It is deliberately shorter than the orchestrator's run deadline.
const DefaultAuditTimeout = 30 * time.Second

// auditCategories is the fixed category set requested from the provider.
var auditCategories = []string{"performance", "accessibility", "best-practices", "seo"}

// Ensure AuditService implements siteaudit.AuditService.
var _ siteaudit.AuditService = (*AuditService)(nil)

// AuditService fetches performance-audit payloads from the provider.
type AuditService struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

// AuditOption configures an AuditService.
type AuditOption func(*AuditService)

// WithAuditEndpoint overrides the provider endpoint.
func WithAuditEndpoint(endpoint string) AuditOption {
	return func(s *AuditService) { s.endpoint = endpoint }
}

// WithAuditAPIKey sets the provider API key.
func WithAuditAPIKey(key string) AuditOption {
	return func(s *AuditService) { s.apiKey = key }
}

// WithAuditTimeout overrides the request timeout.
func WithAuditTimeout(d time.Duration) AuditOption {
	return func(s *AuditService) { s.client.Timeout = d }
}

// NewAuditService creates an AuditService with defaults.
func NewAuditService(opts ...AuditOption) *AuditService {
	s := &AuditService{
		client:   &http.Client{Timeout: DefaultAuditTimeout},
		endpoint: DefaultAuditEndpoint,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// auditResponse mirrors the provider's wire format.
type auditResponse struct {
	LighthouseResult *lighthouseResult `json:"lighthouseResult"`
}

type lighthouseResult struct {
	Categories map[string]struct {
		Score float64 `json:"score"`
	} `json:"categories"`
	Audits map[string]struct {
		NumericValue float64 `json:"numericValue"`
		DisplayValue string  `json:"displayValue"`
	} `json:"audits"`
}

// Audit requests an audit for the fixed category set.
func (s *AuditService) Audit(ctx context.Context, req siteaudit.AuditRequest) (*siteaudit.PerfAudit, error) {
	q := url.Values{}
	q.Set("url", req.URL)
	q.Set("strategy", string(req.Strategy))
	if req.Locale != "" {
		q.Set("locale", req.Locale)
	}
	for _, c := range auditCategories {
		q.Add("category", c)
	}
	if s.apiKey != "" {
		q.Set("key", s.apiKey)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, siteaudit.Errorf(siteaudit.EUNAVAILABLE, "audit provider returned HTTP %d for %s", resp.StatusCode, req.URL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed auditResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing audit response: %w", err)
	}
	if parsed.LighthouseResult == nil {
		return nil, siteaudit.Errorf(siteaudit.EUNAVAILABLE, "audit provider returned no results payload for %s", req.URL)
	}

	audit := &siteaudit.PerfAudit{
		Categories: make(map[string]float64, len(parsed.LighthouseResult.Categories)),
		Audits:     make(map[string]siteaudit.AuditMetric, len(parsed.LighthouseResult.Audits)),
		Raw:        body,
	}
	for key, cat := range parsed.LighthouseResult.Categories {
		audit.Categories[key] = cat.Score
	}
	audit.Score = audit.Categories["performance"]
	for id, a := range parsed.LighthouseResult.Audits {
		audit.Audits[id] = siteaudit.AuditMetric{
			NumericValue: a.NumericValue,
			DisplayValue: a.DisplayValue,
		}
	}
	return audit, nil
}
