package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mkowalczyk/siteaudit"
)

// DefaultPageTimeout is the request timeout for HTML fetches.
const DefaultPageTimeout = 15 * time.Second

// Ensure PageService implements siteaudit.PageService.
var _ siteaudit.PageService = (*PageService)(nil)

// PageService downloads the target page over HTTP(S).
type PageService struct {
	client *http.Client
}

// PageOption configures a PageService.
type PageOption func(*PageService)

// WithPageTimeout overrides the request timeout.
func WithPageTimeout(d time.Duration) PageOption {
	return func(s *PageService) { s.client.Timeout = d }
}

// NewPageService creates a PageService with defaults.
func NewPageService(opts ...PageOption) *PageService {
	s := &PageService{
		client: &http.Client{Timeout: DefaultPageTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchPage retrieves the page, following redirects. The final URL and
// normalized response headers are recorded on the result.
func (s *PageService) FetchPage(ctx context.Context, req siteaudit.PageRequest) (*siteaudit.Page, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, siteaudit.Errorf(siteaudit.EINVALID, "invalid page URL %q", req.URL)
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, siteaudit.Errorf(siteaudit.EINVALID, "page fetch returned HTTP %d for %s", resp.StatusCode, req.URL)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "application/xhtml") {
		return nil, siteaudit.Errorf(siteaudit.EINVALID, "non-HTML content type %q for %s", contentType, req.URL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &siteaudit.Page{
		RequestedURL: req.URL,
		FinalURL:     resp.Request.URL.String(),
		StatusCode:   resp.StatusCode,
		HTML:         string(body),
		Headers:      normalizeHeaders(resp.Header),
	}, nil
}

// normalizeHeaders lower-cases header names and joins multi-valued headers
// with ", ".
func normalizeHeaders(h http.Header) siteaudit.Headers {
	out := make(siteaudit.Headers, len(h))
	for name, values := range h {
		out[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	return out
}
