package audit

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkowalczyk/siteaudit"
	"golang.org/x/net/publicsuffix"
)

// Context is the shared analysis context: built once per run after all
// fetches complete, read-only thereafter, owned by exactly one run.
type Context struct {
	RequestedURL  string
	FinalURL      string
	Origin        *url.URL
	Strategy      siteaudit.Strategy
	Locale        string
	TargetCountry string

	Perf    *siteaudit.PerfAudit
	Page    *siteaudit.Page
	Doc     *goquery.Document
	Robots  *siteaudit.Robots
	Sitemap *siteaudit.Sitemap
	Geo     *siteaudit.GeoLocation
	Links   *siteaudit.LinkSample
	Schema  *siteaudit.SchemaReport
}

// indexable reports whether the page allows indexing: neither the robots
// meta tag nor the X-Robots-Tag header carries a noindex/none directive.
func (c *Context) indexable() bool {
	meta, _ := c.Doc.Find(`meta[name="robots"]`).Attr("content")
	if containsDirective(meta, "noindex") || containsDirective(meta, "none") {
		return false
	}
	header := c.Page.Headers.Get("x-robots-tag")
	if containsDirective(header, "noindex") || containsDirective(header, "none") {
		return false
	}
	return true
}

func containsDirective(directives, name string) bool {
	for _, d := range strings.Split(strings.ToLower(directives), ",") {
		if strings.TrimSpace(d) == name {
			return true
		}
	}
	return false
}

// languageCountries maps bare language subtags to their most common
// target country, used when a locale carries no region.
var languageCountries = map[string]string{
	"en": "US", "de": "DE", "fr": "FR", "es": "ES", "it": "IT",
	"ja": "JP", "pt": "BR", "nl": "NL", "pl": "PL", "ru": "RU",
	"zh": "CN", "ko": "KR", "sv": "SE", "tr": "TR", "da": "DK",
	"cs": "CZ", "fi": "FI", "no": "NO", "uk": "UA",
}

// targetCountry derives an ISO 3166-1 alpha-2 country code from a BCP 47
// locale. The region subtag wins ("de-AT" → AT); a bare language falls back
// to languageCountries; unknown locales yield "".
func targetCountry(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ""
	}
	parts := strings.FieldsFunc(locale, func(r rune) bool { return r == '-' || r == '_' })
	for _, part := range parts[1:] {
		if len(part) == 2 {
			return strings.ToUpper(part)
		}
	}
	if len(parts[0]) == 2 {
		if country, ok := languageCountries[strings.ToLower(parts[0])]; ok {
			return country
		}
	}
	return ""
}

// ccTLDCountry maps a hostname's country-code TLD to a country code, or ""
// for generic TLDs. The public suffix list handles multi-label suffixes
// like co.uk.
func ccTLDCountry(host string) string {
	suffix, _ := publicsuffix.PublicSuffix(strings.ToLower(host))
	if suffix == "" {
		return ""
	}
	labels := strings.Split(suffix, ".")
	last := labels[len(labels)-1]
	if len(last) != 2 {
		return ""
	}
	if last == "uk" {
		return "GB"
	}
	return strings.ToUpper(last)
}
