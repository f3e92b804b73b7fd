package audit

import (
	"context"
	"fmt"

	"github.com/mkowalczyk/siteaudit"
)

// Link module scoring knobs.
const (
	brokenPenaltyMax   = 6
	nofollowPenaltyMax = 3
	nofollowFreeRatio  = 0.2
	smallSampleSize    = 10
	nonIndexableCap    = 4
)

// LinksDetails carries the sample statistics the module scored against.
type LinksDetails struct {
	Candidates    int     `json:"candidates"`
	Checked       int     `json:"checked"`
	Broken        int     `json:"broken"`
	BrokenRatio   float64 `json:"brokenRatio"`
	NofollowRatio float64 `json:"nofollowRatio"`
	Indexable     bool    `json:"indexable"`
}

// scoreLinks starts from 10 and subtracts for broken links, excessive
// nofollow usage and a too-small sample; a non-indexable page is capped.
func (a *Auditor) scoreLinks(_ context.Context, c *Context) *siteaudit.ModuleResult {
	m := newResult(definition(siteaudit.ModuleLinks))

	sample := c.Links
	if sample == nil {
		sample = &siteaudit.LinkSample{}
		note(m, sevInfo, "Link sampling was unavailable for this run.")
	}

	details := LinksDetails{
		Candidates:    sample.TotalCandidates,
		Checked:       len(sample.Checked),
		Broken:        len(sample.Broken),
		BrokenRatio:   sample.BrokenRatio(),
		NofollowRatio: sample.NofollowRatio(),
		Indexable:     c.indexable(),
	}

	points := 10.0
	points -= brokenPenaltyMax * details.BrokenRatio
	if details.Broken > 0 {
		note(m, sevWarning, fmt.Sprintf("%d of %d sampled links are broken.", details.Broken, details.Checked))
	}

	if details.NofollowRatio > nofollowFreeRatio {
		excess := (details.NofollowRatio - nofollowFreeRatio) / (1 - nofollowFreeRatio)
		points -= nofollowPenaltyMax * excess
		note(m, sevInfo, fmt.Sprintf("%.0f%% of internal links are nofollow; follow links pass ranking signals.", details.NofollowRatio*100))
	}

	if details.Checked < smallSampleSize {
		points -= 1
		note(m, sevInfo, fmt.Sprintf("Only %d internal links were sampled; results may be noisy.", details.Checked))
	}

	if !details.Indexable && points > nonIndexableCap {
		points = nonIndexableCap
		note(m, sevWarning, "Internal links pass no signals while the page is non-indexable.")
	}

	highlight(m, "Broken links", fmt.Sprintf("%d/%d", details.Broken, details.Checked), presenceStatus(details.Broken == 0))
	highlight(m, "Nofollow ratio", fmt.Sprintf("%.0f%%", details.NofollowRatio*100), presenceStatus(details.NofollowRatio <= nofollowFreeRatio))

	m.Details = details
	m.Summary = fmt.Sprintf("%d link(s) sampled, %d broken.", details.Checked, details.Broken)
	finalize(m, points)
	return m
}
