package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkowalczyk/siteaudit"
)

// GeoDetails carries the localization signals the module scored against.
type GeoDetails struct {
	Hreflangs       []string `json:"hreflangs,omitempty"`
	TargetCountry   string   `json:"targetCountry,omitempty"`
	CCTLDCountry    string   `json:"ccTldCountry,omitempty"`
	SitemapHreflang bool     `json:"sitemapHreflang"`
	ServerCountry   string   `json:"serverCountry,omitempty"`
}

// scoreGeo evaluates language/country targeting: hreflang annotations
// (+4, +1 on a target-country match), a matching ccTLD (+2), sitemap
// alternate-language links (+2) and server location (+2).
func (a *Auditor) scoreGeo(_ context.Context, c *Context) *siteaudit.ModuleResult {
	m := newResult(definition(siteaudit.ModuleGeo))

	details := GeoDetails{
		TargetCountry:   c.TargetCountry,
		CCTLDCountry:    ccTLDCountry(c.Origin.Hostname()),
		SitemapHreflang: c.Sitemap != nil && c.Sitemap.HasHreflang,
	}
	c.Doc.Find(`link[rel="alternate"][hreflang]`).Each(func(_ int, sel *goquery.Selection) {
		if v, ok := sel.Attr("hreflang"); ok && v != "" {
			details.Hreflangs = append(details.Hreflangs, v)
		}
	})
	if c.Geo != nil {
		details.ServerCountry = c.Geo.CountryCode
	}

	var points float64
	if len(details.Hreflangs) > 0 {
		points += 4
	} else {
		note(m, sevWarning, "No hreflang annotations found; add them if the page targets multiple locales.")
	}

	if details.TargetCountry != "" && hreflangMatch(details.Hreflangs, details.TargetCountry) {
		points += 1
	}

	if details.TargetCountry != "" && details.CCTLDCountry == details.TargetCountry {
		points += 2
	} else if details.TargetCountry != "" && details.CCTLDCountry != "" {
		note(m, sevInfo, fmt.Sprintf("The %s ccTLD does not match the %s target market.", details.CCTLDCountry, details.TargetCountry))
	}

	if details.SitemapHreflang {
		points += 2
	} else {
		note(m, sevInfo, "Sitemap entries carry no alternate-language links.")
	}

	if details.TargetCountry != "" && details.ServerCountry == details.TargetCountry {
		points += 2
	} else if c.Geo != nil && details.TargetCountry != "" {
		note(m, sevInfo, fmt.Sprintf("Server located in %s while targeting %s; consider a CDN presence in the target market.", details.ServerCountry, details.TargetCountry))
	}

	highlight(m, "Hreflang annotations", fmt.Sprintf("%d", len(details.Hreflangs)), presenceStatus(len(details.Hreflangs) > 0))
	if details.ServerCountry != "" {
		highlight(m, "Server country", details.ServerCountry, siteaudit.StatusInfo)
	}

	m.Details = details
	m.Summary = geoSummary(details)
	finalize(m, points)
	return m
}

func geoSummary(d GeoDetails) string {
	if len(d.Hreflangs) == 0 {
		return "No locale targeting signals detected."
	}
	return fmt.Sprintf("%d hreflang annotation(s) targeting %s.", len(d.Hreflangs), d.TargetCountry)
}

// hreflangMatch reports whether any hreflang value targets the country,
// either via its region subtag or via its bare language's usual market.
func hreflangMatch(hreflangs []string, country string) bool {
	for _, h := range hreflangs {
		if targetCountry(h) == country {
			return true
		}
		parts := strings.FieldsFunc(h, func(r rune) bool { return r == '-' || r == '_' })
		for _, part := range parts[1:] {
			if strings.EqualFold(part, country) {
				return true
			}
		}
	}
	return false
}
