package audit

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mkowalczyk/siteaudit"
)

// SocialDetails carries the social metadata signals the module scored against.
type SocialDetails struct {
	OGTitle       bool   `json:"ogTitle"`
	OGDescription bool   `json:"ogDescription"`
	OGImage       string `json:"ogImage,omitempty"`
	TwitterCard   bool   `json:"twitterCard"`
	OGImageOK     bool   `json:"ogImageOk"`
}

// scoreSocial awards up to 7 points for Open Graph coverage, +1 for a
// Twitter card, and +2 when the OG image responds to a HEAD probe.
func (a *Auditor) scoreSocial(ctx context.Context, c *Context) *siteaudit.ModuleResult {
	m := newResult(definition(siteaudit.ModuleSocial))

	details := SocialDetails{
		OGTitle:       metaProperty(c, "og:title") != "",
		OGDescription: metaProperty(c, "og:description") != "",
		OGImage:       metaProperty(c, "og:image"),
		TwitterCard:   metaName(c, "twitter:card") != "" || metaProperty(c, "twitter:card") != "",
	}

	present := 0
	for _, ok := range []bool{details.OGTitle, details.OGDescription, details.OGImage != ""} {
		if ok {
			present++
		}
	}
	points := 7 * float64(present) / 3

	if !details.OGTitle {
		note(m, sevWarning, "Add an og:title tag for link previews.")
	}
	if !details.OGDescription {
		note(m, sevWarning, "Add an og:description tag for link previews.")
	}
	if details.OGImage == "" {
		note(m, sevWarning, "Add an og:image tag; previews without an image get less engagement.")
	}

	if details.TwitterCard {
		points += 1
	} else {
		note(m, sevInfo, "Add a twitter:card tag to control card rendering.")
	}

	if details.OGImage != "" {
		details.OGImageOK = a.probeImage(ctx, c, details.OGImage)
		if details.OGImageOK {
			points += 2
		} else {
			note(m, sevWarning, "The og:image URL did not respond successfully.")
		}
	}

	highlight(m, "Open Graph tags", fmt.Sprintf("%d/3", present), presenceStatus(present == 3))
	highlight(m, "Twitter card", fmt.Sprintf("%t", details.TwitterCard), presenceStatus(details.TwitterCard))

	m.Details = details
	m.Summary = fmt.Sprintf("%d of 3 Open Graph tags present.", present)
	finalize(m, points)
	return m
}

// probeImage resolves the OG image URL against the page origin and HEAD
// probes it. Probe failures only cost the points; they never fail the run.
func (a *Auditor) probeImage(ctx context.Context, c *Context, image string) bool {
	ref, err := url.Parse(strings.TrimSpace(image))
	if err != nil {
		return false
	}
	status, err := a.Prober.Probe(ctx, c.Origin.ResolveReference(ref).String())
	return err == nil && status > 0 && status < 400
}

func metaProperty(c *Context, property string) string {
	v, _ := c.Doc.Find(`meta[property="` + property + `"]`).Attr("content")
	return strings.TrimSpace(v)
}

func metaName(c *Context, name string) string {
	v, _ := c.Doc.Find(`meta[name="` + name + `"]`).Attr("content")
	return strings.TrimSpace(v)
}
