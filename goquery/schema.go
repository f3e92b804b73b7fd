// Package goquery provides HTML-introspection services built on top of the
// PuerkitoBio/goquery selector engine.
package goquery

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkowalczyk/siteaudit"
)

// Ensure SchemaService implements siteaudit.SchemaService.
var _ siteaudit.SchemaService = (*SchemaService)(nil)

// SchemaService detects structured data in raw HTML: JSON-LD blocks
// (including @graph containers) and microdata itemtype attributes.
// It stands in for a remote validator behind the same interface.
type SchemaService struct{}

// NewSchemaService creates a new SchemaService.
func NewSchemaService() *SchemaService {
	return &SchemaService{}
}

// Validate extracts detected schema type names and counts validation
// failures (unparseable JSON-LD blocks) and warnings (entities without a
// type).
func (s *SchemaService) Validate(ctx context.Context, html string) (*siteaudit.SchemaReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, siteaudit.Errorf(siteaudit.EINVALID, "unparseable HTML")
	}

	report := &siteaudit.SchemaReport{}
	seen := make(map[string]bool)

	addType := func(name string) {
		name = strings.TrimSpace(name)
		// Microdata itemtype values are full schema.org URLs.
		if idx := strings.LastIndex(name, "/"); idx != -1 {
			name = name[idx+1:]
		}
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		report.Types = append(report.Types, name)
	}

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			report.Failures++
			return
		}
		collectTypes(payload, addType, report)
	})

	doc.Find("[itemtype]").Each(func(_ int, sel *goquery.Selection) {
		if itemtype, ok := sel.Attr("itemtype"); ok {
			addType(itemtype)
		}
	})

	return report, nil
}

// collectTypes walks a decoded JSON-LD value and records every @type,
// descending into @graph containers and top-level arrays.
func collectTypes(payload any, addType func(string), report *siteaudit.SchemaReport) {
	switch v := payload.(type) {
	case []any:
		for _, item := range v {
			collectTypes(item, addType, report)
		}
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			for _, item := range graph {
				collectTypes(item, addType, report)
			}
			return
		}
		switch t := v["@type"].(type) {
		case string:
			addType(t)
		case []any:
			for _, name := range t {
				if s, ok := name.(string); ok {
					addType(s)
				}
			}
		default:
			report.Warnings++
		}
	}
}
