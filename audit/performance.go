package audit

import (
	"context"
	"fmt"

	"github.com/mkowalczyk/siteaudit"
)

// Performance metric thresholds (milliseconds unless noted) above which a
// recommendation fires.
const (
	lcpWarnMillis = 4000
	clsWarnValue  = 0.25
	inpWarnMillis = 500
	tbtWarnMillis = 600
)

// PerformanceDetails carries the raw metric values the module scored against.
type PerformanceDetails struct {
	CategoryScore float64 `json:"categoryScore"`
	LCPMillis     float64 `json:"lcpMillis"`
	CLS           float64 `json:"cls"`
	INPMillis     float64 `json:"inpMillis"`
	TBTMillis     float64 `json:"tbtMillis"`
}

// scorePerformance maps the audit provider's performance category score to
// [0,10] and flags slow Core Web Vitals.
func (a *Auditor) scorePerformance(_ context.Context, c *Context) *siteaudit.ModuleResult {
	m := newResult(definition(siteaudit.ModulePerformance))

	details := PerformanceDetails{
		CategoryScore: c.Perf.Score,
		LCPMillis:     c.Perf.Metric("largest-contentful-paint"),
		CLS:           c.Perf.Metric("cumulative-layout-shift"),
		INPMillis:     c.Perf.Metric("interaction-to-next-paint"),
		TBTMillis:     c.Perf.Metric("total-blocking-time"),
	}
	m.Details = details

	if details.LCPMillis > lcpWarnMillis {
		note(m, sevWarning, fmt.Sprintf("Largest Contentful Paint is %.0fms; aim for under 2500ms.", details.LCPMillis))
	}
	if details.CLS > clsWarnValue {
		note(m, sevWarning, fmt.Sprintf("Cumulative Layout Shift is %.2f; aim for under 0.1.", details.CLS))
	}
	if details.INPMillis > inpWarnMillis {
		note(m, sevWarning, fmt.Sprintf("Interaction to Next Paint is %.0fms; aim for under 200ms.", details.INPMillis))
	}
	if details.TBTMillis > tbtWarnMillis {
		note(m, sevWarning, fmt.Sprintf("Total Blocking Time is %.0fms; aim for under 200ms.", details.TBTMillis))
	}

	highlight(m, "Performance score", fmt.Sprintf("%.0f/100", details.CategoryScore*100), scoreStatus(details.CategoryScore))
	highlight(m, "LCP", fmt.Sprintf("%.0fms", details.LCPMillis), thresholdStatus(details.LCPMillis, 2500, lcpWarnMillis))
	highlight(m, "CLS", fmt.Sprintf("%.2f", details.CLS), thresholdStatus(details.CLS, 0.1, clsWarnValue))
	highlight(m, "INP", fmt.Sprintf("%.0fms", details.INPMillis), thresholdStatus(details.INPMillis, 200, inpWarnMillis))
	highlight(m, "TBT", fmt.Sprintf("%.0fms", details.TBTMillis), thresholdStatus(details.TBTMillis, 200, tbtWarnMillis))

	m.Summary = fmt.Sprintf("Lab performance score %.0f/100 (%s).", details.CategoryScore*100, c.Strategy)
	finalize(m, details.CategoryScore*10)
	return m
}

// scoreStatus classifies a [0,1] category score for display.
func scoreStatus(score float64) siteaudit.Status {
	switch {
	case score >= 0.9:
		return siteaudit.StatusGood
	case score >= 0.5:
		return siteaudit.StatusWarn
	default:
		return siteaudit.StatusPoor
	}
}

// thresholdStatus classifies a metric against good/poor boundaries.
func thresholdStatus(value, good, poor float64) siteaudit.Status {
	switch {
	case value <= good:
		return siteaudit.StatusGood
	case value <= poor:
		return siteaudit.StatusWarn
	default:
		return siteaudit.StatusPoor
	}
}
