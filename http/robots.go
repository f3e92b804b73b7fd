package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mkowalczyk/siteaudit"
	"github.com/temoto/robotstxt"
)

// DefaultRobotsTimeout is the request timeout for robots.txt fetches.
const DefaultRobotsTimeout = 10 * time.Second

// robotsAgent is the agent name used for the allow check.
const robotsAgent = "siteaudit"

// Ensure RobotsService implements siteaudit.RobotsService.
var _ siteaudit.RobotsService = (*RobotsService)(nil)

// RobotsService fetches and parses robots.txt for an origin.
type RobotsService struct {
	client *http.Client
}

// NewRobotsService creates a RobotsService with defaults.
func NewRobotsService() *RobotsService {
	return &RobotsService{
		client: &http.Client{Timeout: DefaultRobotsTimeout},
	}
}

// FetchRobots downloads /robots.txt relative to the origin. Robots data is
// best-effort: any network error or error status degrades to Found == false.
func (s *RobotsService) FetchRobots(ctx context.Context, req siteaudit.RobotsRequest) (*siteaudit.Robots, error) {
	absent := &siteaudit.Robots{Found: false, PathAllowed: true}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(req.Origin, "/")+"/robots.txt", nil)
	if err != nil {
		return absent, nil
	}
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return absent, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return absent, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return absent, nil
	}

	robots := &siteaudit.Robots{
		Found:       true,
		Body:        string(body),
		SitemapURLs: parseSitemapDirectives(string(body)),
		PathAllowed: true,
	}

	if data, err := robotstxt.FromBytes(body); err == nil {
		path := req.Path
		if path == "" {
			path = "/"
		}
		robots.PathAllowed = data.TestAgent(path, robotsAgent)
	}

	return robots, nil
}

// parseSitemapDirectives extracts Sitemap: lines from robots.txt text,
// case-insensitively, in file order.
func parseSitemapDirectives(body string) []string {
	var sitemaps []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			sitemapURL := strings.TrimSpace(line[len("sitemap:"):])
			if sitemapURL != "" {
				sitemaps = append(sitemaps, sitemapURL)
			}
		}
	}
	return sitemaps
}
