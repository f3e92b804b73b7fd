package siteaudit

import "context"

// SitemapAlternate is an alternate-language link attached to a sitemap entry.
type SitemapAlternate struct {
	Hreflang string `json:"hreflang"`
	Href     string `json:"href"`
}

// SitemapEntry is one <url> element from a sitemap.
type SitemapEntry struct {
	Loc        string             `json:"loc"`
	LastMod    string             `json:"lastmod,omitempty"`
	Alternates []SitemapAlternate `json:"alternates,omitempty"`
}

// SitemapProbe records the outcome of trying one candidate sitemap URL.
type SitemapProbe struct {
	URL        string `json:"url"`
	StatusCode int    `json:"statusCode"`
	OK         bool   `json:"ok"`
	Entries    int    `json:"entries"`
}

// Sitemap summarizes sitemap discovery for one origin.
type Sitemap struct {
	Probes      []SitemapProbe `json:"probes"`
	Entries     []SitemapEntry `json:"entries,omitempty"`
	HasHreflang bool           `json:"hasHreflang"`
}

// Reachable reports whether any candidate sitemap was fetched and parsed.
func (s *Sitemap) Reachable() bool {
	if s == nil {
		return false
	}
	for _, p := range s.Probes {
		if p.OK {
			return true
		}
	}
	return false
}

// SitemapRequest identifies one sitemap discovery.
type SitemapRequest struct {
	// Origin is the scheme://host[:port] used for the /sitemap.xml fallback.
	Origin string

	// Candidates are sitemap URLs from robots.txt directives, tried first.
	Candidates []string

	SkipCache bool
}

// SitemapService discovers and parses the origin's sitemap.
type SitemapService interface {
	// Discover tries up to three candidate sitemap URLs, stopping at the
	// first that parses. It only errors on context cancellation; fetch and
	// parse failures are recorded as failed probes.
	Discover(ctx context.Context, req SitemapRequest) (*Sitemap, error)
}
