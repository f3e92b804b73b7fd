package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkowalczyk/siteaudit"
	"github.com/mkowalczyk/siteaudit/simhash"
)

// On-page length bounds, in characters.
const (
	titleMinLen       = 30
	titleMaxLen       = 60
	descriptionMinLen = 70
	descriptionMaxLen = 160
)

// Near-duplicate text block selection bounds.
const (
	duplicateBlockMinLen = 120
	duplicateBlockCap    = 40
)

// duplicateBlockSelector matches the block-level elements considered for
// near-duplicate detection.
const duplicateBlockSelector = "h1, h2, h3, p, li, section, article"

// SEOBasicsDetails carries the on-page signals the module scored against.
type SEOBasicsDetails struct {
	Title            string `json:"title"`
	TitleLength      int    `json:"titleLength"`
	Description      string `json:"description"`
	DescriptionLen   int    `json:"descriptionLength"`
	CanonicalCount   int    `json:"canonicalCount"`
	Indexable        bool   `json:"indexable"`
	SitemapReachable bool   `json:"sitemapReachable"`
	DuplicatePairs   int    `json:"duplicatePairs"`
}

// scoreSEOBasics awards 2 points each for a well-sized title, a well-sized
// meta description, exactly one canonical tag, indexability, and a
// reachable sitemap. Near-duplicate content is reported as issues without
// affecting the score.
func (a *Auditor) scoreSEOBasics(_ context.Context, c *Context) *siteaudit.ModuleResult {
	m := newResult(definition(siteaudit.ModuleSEOBasics))

	title := strings.TrimSpace(c.Doc.Find("title").First().Text())
	description, _ := c.Doc.Find(`meta[name="description"]`).Attr("content")
	description = strings.TrimSpace(description)

	details := SEOBasicsDetails{
		Title:            title,
		TitleLength:      len([]rune(title)),
		Description:      description,
		DescriptionLen:   len([]rune(description)),
		CanonicalCount:   c.Doc.Find(`link[rel="canonical"]`).Length(),
		Indexable:        c.indexable(),
		SitemapReachable: c.Sitemap.Reachable(),
	}

	var points float64

	if details.TitleLength >= titleMinLen && details.TitleLength <= titleMaxLen {
		points += 2
	} else if details.TitleLength == 0 {
		note(m, sevCritical, "The page has no title tag.")
	} else {
		note(m, sevWarning, fmt.Sprintf("Title is %d characters; aim for %d-%d.", details.TitleLength, titleMinLen, titleMaxLen))
	}

	if details.DescriptionLen >= descriptionMinLen && details.DescriptionLen <= descriptionMaxLen {
		points += 2
	} else if details.DescriptionLen == 0 {
		note(m, sevWarning, "The page has no meta description.")
	} else {
		note(m, sevWarning, fmt.Sprintf("Meta description is %d characters; aim for %d-%d.", details.DescriptionLen, descriptionMinLen, descriptionMaxLen))
	}

	switch details.CanonicalCount {
	case 1:
		points += 2
	case 0:
		note(m, sevWarning, "Add a canonical link tag to consolidate ranking signals.")
	default:
		note(m, sevWarning, fmt.Sprintf("Found %d canonical tags; exactly one is expected.", details.CanonicalCount))
	}

	if details.Indexable {
		points += 2
	} else {
		note(m, sevCritical, "The page is blocked from indexing by a noindex directive.")
	}

	if details.SitemapReachable {
		points += 2
	} else {
		note(m, sevWarning, "No reachable sitemap was found for this origin.")
	}

	if c.Robots != nil && c.Robots.Found && !c.Robots.PathAllowed {
		note(m, sevWarning, "robots.txt disallows this path for generic crawlers.")
	}

	details.DuplicatePairs = a.duplicateContentPairs(c.Doc)
	switch {
	case details.DuplicatePairs >= 3:
		note(m, sevWarning, fmt.Sprintf("%d near-duplicate content block pair(s) detected; consolidate repeated copy.", details.DuplicatePairs))
	case details.DuplicatePairs > 0:
		note(m, sevInfo, fmt.Sprintf("%d near-duplicate content block pair(s) detected.", details.DuplicatePairs))
	}

	highlight(m, "Title length", fmt.Sprintf("%d chars", details.TitleLength), presenceStatus(details.TitleLength >= titleMinLen && details.TitleLength <= titleMaxLen))
	highlight(m, "Meta description", fmt.Sprintf("%d chars", details.DescriptionLen), presenceStatus(details.DescriptionLen >= descriptionMinLen && details.DescriptionLen <= descriptionMaxLen))
	highlight(m, "Indexable", fmt.Sprintf("%t", details.Indexable), indexStatus(details.Indexable))
	highlight(m, "Sitemap", fmt.Sprintf("reachable=%t", details.SitemapReachable), presenceStatus(details.SitemapReachable))

	m.Details = details
	m.Summary = fmt.Sprintf("%d of 5 on-page fundamentals in place.", int(points/2))
	finalize(m, points)
	return m
}

func indexStatus(indexable bool) siteaudit.Status {
	if indexable {
		return siteaudit.StatusGood
	}
	return siteaudit.StatusPoor
}

// duplicateContentPairs fingerprints the page's block-level text and counts
// near-duplicate pairs. Block selection is bounded so the O(n²) comparison
// stays cheap.
func (a *Auditor) duplicateContentPairs(doc *goquery.Document) int {
	var fingerprints []uint64
	doc.Find(duplicateBlockSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if len([]rune(text)) < duplicateBlockMinLen {
			return true
		}
		fingerprints = append(fingerprints, simhash.Fingerprint(text))
		return len(fingerprints) < duplicateBlockCap
	})
	return len(simhash.DuplicatePairs(fingerprints, simhash.DuplicateThreshold))
}
