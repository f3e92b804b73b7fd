package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/mkowalczyk/siteaudit"
)

// DefaultSitemapTimeout is the request timeout for sitemap fetches.
const DefaultSitemapTimeout = 10 * time.Second

// maxSitemapCandidates bounds how many candidate sitemap URLs are tried.
// One level of sitemap-index children counts toward the same budget.
const maxSitemapCandidates = 3

// Ensure SitemapService implements siteaudit.SitemapService.
var _ siteaudit.SitemapService = (*SitemapService)(nil)

// SitemapService discovers and parses sitemaps over HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a SitemapService with defaults.
func NewSitemapService() *SitemapService {
	return &SitemapService{
		client: &http.Client{Timeout: DefaultSitemapTimeout},
	}
}

// Discover tries candidate sitemap URLs (robots.txt directives first, then
// the /sitemap.xml fallback) and stops at the first that parses. A sitemap
// index is followed one level, its children joining the candidate queue.
// Fetch and parse failures are recorded as failed probes, never errors.
func (s *SitemapService) Discover(ctx context.Context, req siteaudit.SitemapRequest) (*siteaudit.Sitemap, error) {
	candidates := req.Candidates
	if len(candidates) == 0 {
		candidates = []string{strings.TrimSuffix(req.Origin, "/") + "/sitemap.xml"}
	}

	result := &siteaudit.Sitemap{}
	tried := 0

	for i := 0; i < len(candidates) && tried < maxSitemapCandidates; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tried++

		candidate := candidates[i]
		probe := siteaudit.SitemapProbe{URL: candidate}

		body, status, err := s.fetch(ctx, candidate)
		probe.StatusCode = status
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			result.Probes = append(result.Probes, probe)
			continue
		}

		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(body); err != nil || doc.Root() == nil {
			result.Probes = append(result.Probes, probe)
			continue
		}

		root := doc.Root()
		if root.Tag == "sitemapindex" {
			// Queue the index's children; the probe itself carries no entries.
			for _, child := range root.SelectElements("sitemap") {
				if loc := child.SelectElement("loc"); loc != nil {
					if u := strings.TrimSpace(loc.Text()); u != "" {
						candidates = append(candidates, u)
					}
				}
			}
			probe.OK = true
			result.Probes = append(result.Probes, probe)
			continue
		}

		entries := parseURLSet(root)
		probe.OK = true
		probe.Entries = len(entries)
		result.Probes = append(result.Probes, probe)

		if len(entries) > 0 {
			result.Entries = entries
			for _, e := range entries {
				if len(e.Alternates) > 0 {
					result.HasHreflang = true
					break
				}
			}
			break
		}
	}

	return result, nil
}

// parseURLSet extracts entries from a <urlset> element, including
// xhtml:link rel=alternate hreflang alternates.
func parseURLSet(root *etree.Element) []siteaudit.SitemapEntry {
	var entries []siteaudit.SitemapEntry
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		entry := siteaudit.SitemapEntry{Loc: strings.TrimSpace(loc.Text())}
		if entry.Loc == "" {
			continue
		}
		if lastmod := urlEl.SelectElement("lastmod"); lastmod != nil {
			entry.LastMod = strings.TrimSpace(lastmod.Text())
		}
		for _, child := range urlEl.ChildElements() {
			if child.Tag != "link" {
				continue
			}
			if child.SelectAttrValue("rel", "") != "alternate" {
				continue
			}
			hreflang := child.SelectAttrValue("hreflang", "")
			if hreflang == "" {
				continue
			}
			entry.Alternates = append(entry.Alternates, siteaudit.SitemapAlternate{
				Hreflang: hreflang,
				Href:     child.SelectAttrValue("href", ""),
			})
		}
		entries = append(entries, entry)
	}
	return entries
}

// fetch downloads a candidate sitemap, returning the body and status code.
func (s *SitemapService) fetch(ctx context.Context, targetURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, siteaudit.Errorf(siteaudit.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, targetURL)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, resp.StatusCode, err
	}
	return buf.Bytes(), resp.StatusCode, nil
}
