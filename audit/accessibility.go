package audit

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkowalczyk/siteaudit"
)

// landmarkSelectors are the distinct landmark element types counted for the
// structure bonus.
var landmarkSelectors = []string{"main", "nav", "header", "footer", "aside"}

// AccessibilityDetails carries the signals the module scored against.
type AccessibilityDetails struct {
	Images        int     `json:"images"`
	ImagesWithAlt int     `json:"imagesWithAlt"`
	AltRatio      float64 `json:"altRatio"`
	Landmarks     int     `json:"landmarks"`
}

// scoreAccessibility scores alt-text coverage (up to 6 points by ratio,
// +2 at near-full coverage) and landmark structure (+2 for two or more
// distinct landmark types). A page without images counts as full coverage.
func (a *Auditor) scoreAccessibility(_ context.Context, c *Context) *siteaudit.ModuleResult {
	m := newResult(definition(siteaudit.ModuleAccessibility))

	details := AccessibilityDetails{AltRatio: 1}
	c.Doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		details.Images++
		if alt, ok := sel.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			details.ImagesWithAlt++
		}
	})
	if details.Images > 0 {
		details.AltRatio = float64(details.ImagesWithAlt) / float64(details.Images)
	}
	for _, sel := range landmarkSelectors {
		if c.Doc.Find(sel).Length() > 0 {
			details.Landmarks++
		}
	}

	points := math.Round(details.AltRatio * 6)
	if details.AltRatio >= 0.95 {
		points += 2
	} else {
		note(m, sevWarning, fmt.Sprintf("%d of %d images lack alt text.", details.Images-details.ImagesWithAlt, details.Images))
	}
	if details.Landmarks >= 2 {
		points += 2
	} else {
		note(m, sevInfo, "Add landmark elements (main, nav, header, footer) to aid assistive navigation.")
	}

	highlight(m, "Alt coverage", fmt.Sprintf("%d/%d", details.ImagesWithAlt, details.Images), ratioStatus(details.AltRatio))
	highlight(m, "Landmark types", fmt.Sprintf("%d", details.Landmarks), presenceStatus(details.Landmarks >= 2))

	m.Details = details
	m.Summary = fmt.Sprintf("%.0f%% alt coverage, %d landmark type(s).", details.AltRatio*100, details.Landmarks)
	finalize(m, points)
	return m
}

func ratioStatus(ratio float64) siteaudit.Status {
	switch {
	case ratio >= 0.95:
		return siteaudit.StatusGood
	case ratio >= 0.5:
		return siteaudit.StatusWarn
	default:
		return siteaudit.StatusPoor
	}
}
