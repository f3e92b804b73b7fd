package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkowalczyk/siteaudit"
)

// importantSchemaTypes are the schema.org types that earn extra points when
// detected; at most four count.
var importantSchemaTypes = []string{
	"Organization", "WebSite", "WebPage", "BreadcrumbList",
	"Article", "Product", "FAQPage",
}

// SchemaDetails carries the validator output the module scored against.
type SchemaDetails struct {
	Types          []string `json:"types"`
	ImportantTypes []string `json:"importantTypes,omitempty"`
	Failures       int      `json:"failures"`
	Warnings       int      `json:"warnings"`
}

// scoreSchema awards points for structured-data coverage: any detected type
// (+4), up to four important types (+1 each), and a clean validator run (+2).
func (a *Auditor) scoreSchema(_ context.Context, c *Context) *siteaudit.ModuleResult {
	m := newResult(definition(siteaudit.ModuleSchema))

	report := c.Schema
	if report == nil {
		// Validator degraded; score what we know, which is nothing.
		report = &siteaudit.SchemaReport{}
		note(m, sevInfo, "Structured-data validation was unavailable for this run.")
	}

	details := SchemaDetails{Types: report.Types, Failures: report.Failures, Warnings: report.Warnings}
	for _, name := range importantSchemaTypes {
		if report.HasType(name) {
			details.ImportantTypes = append(details.ImportantTypes, name)
		}
	}

	var points float64
	if len(report.Types) > 0 {
		points += 4
	} else {
		note(m, sevWarning, "No structured data detected; add schema.org markup for rich results.")
	}

	important := len(details.ImportantTypes)
	if important > 4 {
		important = 4
	}
	points += float64(important)
	if len(details.ImportantTypes) == 0 && len(report.Types) > 0 {
		note(m, sevInfo, "Consider adding common schema types such as Organization, WebSite or BreadcrumbList.")
	}

	if report.Failures == 0 {
		points += 2
	} else {
		note(m, sevWarning, fmt.Sprintf("%d structured-data block(s) failed validation.", report.Failures))
	}

	highlight(m, "Detected types", strings.Join(report.Types, ", "), presenceStatus(len(report.Types) > 0))
	highlight(m, "Validation failures", fmt.Sprintf("%d", report.Failures), presenceStatus(report.Failures == 0))

	m.Details = details
	if len(report.Types) == 0 {
		m.Summary = "No structured data found."
	} else {
		m.Summary = fmt.Sprintf("%d schema type(s) detected, %d validation failure(s).", len(report.Types), report.Failures)
	}
	finalize(m, points)
	return m
}

// presenceStatus maps a boolean check to good/warn for display.
func presenceStatus(ok bool) siteaudit.Status {
	if ok {
		return siteaudit.StatusGood
	}
	return siteaudit.StatusWarn
}
