package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkowalczyk/siteaudit"
)

// SecurityDetails carries the transport-security signals the module scored
// against.
type SecurityDetails struct {
	HTTPS             bool `json:"https"`
	HSTS              bool `json:"hsts"`
	NoSniff           bool `json:"noSniff"`
	FrameProtection   bool `json:"frameProtection"`
	ContentTypeOK     bool `json:"contentTypeOk"`
	MixedContentCount int  `json:"mixedContentCount"`
}

// scoreSecurity checks HTTPS first — a plain-HTTP page scores 0 outright —
// then awards 2 points each for HSTS, nosniff, frame protection, a charset-
// qualified HTML content type, and the absence of mixed content.
func (a *Auditor) scoreSecurity(_ context.Context, c *Context) *siteaudit.ModuleResult {
	m := newResult(definition(siteaudit.ModuleSecurity))

	details := SecurityDetails{HTTPS: c.Origin.Scheme == "https"}

	if !details.HTTPS {
		note(m, sevCritical, "The page is served over plain HTTP; migrate to HTTPS.")
		highlight(m, "HTTPS", "no", siteaudit.StatusPoor)
		m.Details = details
		m.Summary = "Not served over HTTPS."
		m.Score = 0
		return m
	}

	headers := c.Page.Headers
	details.HSTS = headers.Has("strict-transport-security")
	details.NoSniff = strings.Contains(strings.ToLower(headers.Get("x-content-type-options")), "nosniff")
	details.FrameProtection = headers.Has("x-frame-options") ||
		strings.Contains(strings.ToLower(headers.Get("content-security-policy")), "frame-ancestors")
	contentType := strings.ToLower(headers.Get("content-type"))
	details.ContentTypeOK = strings.Contains(contentType, "text/html") && strings.Contains(contentType, "charset")
	details.MixedContentCount = countMixedContent(c.Doc)

	var points float64
	if details.HSTS {
		points += 2
	} else {
		note(m, sevWarning, "Add a Strict-Transport-Security header.")
	}
	if details.NoSniff {
		points += 2
	} else {
		note(m, sevWarning, "Add X-Content-Type-Options: nosniff.")
	}
	if details.FrameProtection {
		points += 2
	} else {
		note(m, sevWarning, "Add X-Frame-Options or a CSP frame-ancestors directive.")
	}
	if details.ContentTypeOK {
		points += 2
	} else {
		note(m, sevInfo, "Declare a charset in the Content-Type header.")
	}
	if details.MixedContentCount == 0 {
		points += 2
	} else {
		note(m, sevWarning, fmt.Sprintf("%d resource reference(s) load over plain HTTP.", details.MixedContentCount))
	}

	highlight(m, "HTTPS", "yes", siteaudit.StatusGood)
	highlight(m, "HSTS", fmt.Sprintf("%t", details.HSTS), presenceStatus(details.HSTS))
	highlight(m, "Mixed content", fmt.Sprintf("%d", details.MixedContentCount), presenceStatus(details.MixedContentCount == 0))

	m.Details = details
	m.Summary = fmt.Sprintf("%d of 5 transport-security checks passing.", int(points/2))
	finalize(m, points)
	return m
}

// countMixedContent counts http:// references in src and href attributes.
func countMixedContent(doc *goquery.Document) int {
	count := 0
	doc.Find("[src], [href]").Each(func(_ int, sel *goquery.Selection) {
		for _, attr := range []string{"src", "href"} {
			if v, ok := sel.Attr(attr); ok && strings.HasPrefix(strings.TrimSpace(v), "http://") {
				count++
			}
		}
	})
	return count
}
