package siteaudit

import "context"

// Robots is the robots.txt state for an origin. Robots data is best-effort:
// an unreachable or erroring robots.txt yields Found == false, never an error.
type Robots struct {
	Found bool `json:"found"`

	// Body is the raw robots.txt text.
	Body string `json:"body,omitempty"`

	// SitemapURLs lists the Sitemap: directives, in file order.
	SitemapURLs []string `json:"sitemapUrls,omitempty"`

	// PathAllowed reports whether the audited path is allowed for a
	// generic crawler agent. True when no robots.txt was found.
	PathAllowed bool `json:"pathAllowed"`
}

// RobotsRequest identifies one robots.txt fetch.
type RobotsRequest struct {
	// Origin is the scheme://host[:port] of the audited page.
	Origin string

	// Path is the audited page's path, used for the agent-allow check.
	Path string

	SkipCache bool
}

// RobotsService fetches robots directives for an origin.
type RobotsService interface {
	// FetchRobots returns the origin's robots state. It only errors on
	// context cancellation; all fetch failures degrade to Found == false.
	FetchRobots(ctx context.Context, req RobotsRequest) (*Robots, error)
}
