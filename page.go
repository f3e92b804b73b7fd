package siteaudit

import (
	"context"
	"strings"
)

// Headers holds normalized response headers: names lower-cased,
// multi-valued headers joined with ", ".
type Headers map[string]string

// Get returns the header value for a lower-cased name.
func (h Headers) Get(name string) string {
	return h[strings.ToLower(name)]
}

// Has reports whether the header is present with a non-empty value.
func (h Headers) Has(name string) bool {
	return h.Get(name) != ""
}

// Page is a fetched HTML document.
type Page struct {
	// RequestedURL is the URL the fetch started from.
	RequestedURL string `json:"requestedUrl"`

	// FinalURL is the URL after following redirects.
	FinalURL string `json:"finalUrl"`

	StatusCode int     `json:"statusCode"`
	HTML       string  `json:"html"`
	Headers    Headers `json:"headers"`
}

// PageRequest identifies one HTML fetch.
type PageRequest struct {
	URL       string
	SkipCache bool
}

// PageService downloads and validates the target page.
type PageService interface {
	// FetchPage retrieves the page. Returns EINVALID when the response is
	// not HTML or carries an error status; both are fatal for a run.
	FetchPage(ctx context.Context, req PageRequest) (*Page, error)
}
