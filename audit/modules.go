package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/mkowalczyk/siteaudit"
)

// moduleFunc computes one module's result over the shared context.
// The context.Context is passed through for modules that issue their own
// bounded probes (e.g. the social module's OG-image check).
type moduleFunc func(ctx context.Context, c *Context) *siteaudit.ModuleResult

// moduleEntry pairs a static definition with its computation.
type moduleEntry struct {
	def siteaudit.ModuleDefinition
	fn  moduleFunc
}

// modules returns the fixed, ordered module registry. Module order does not
// affect correctness but keeps result ordering deterministic.
func (a *Auditor) modules() []moduleEntry {
	defs := siteaudit.ModuleDefinitions()
	fns := map[siteaudit.ModuleKey]moduleFunc{
		siteaudit.ModulePerformance:   a.scorePerformance,
		siteaudit.ModuleSchema:        a.scoreSchema,
		siteaudit.ModuleGeo:           a.scoreGeo,
		siteaudit.ModuleSEOBasics:     a.scoreSEOBasics,
		siteaudit.ModuleSocial:        a.scoreSocial,
		siteaudit.ModuleSecurity:      a.scoreSecurity,
		siteaudit.ModuleAccessibility: a.scoreAccessibility,
		siteaudit.ModuleLinks:         a.scoreLinks,
	}
	entries := make([]moduleEntry, 0, len(defs))
	for _, def := range defs {
		entries = append(entries, moduleEntry{def: def, fn: fns[def.Key]})
	}
	return entries
}

// runModules computes every module over the fully assembled context.
// A panicking module is isolated into an internal_error result with score 0
// so the run still completes and aggregates.
func (a *Auditor) runModules(ctx context.Context, c *Context) []*siteaudit.ModuleResult {
	entries := a.modules()
	results := make([]*siteaudit.ModuleResult, 0, len(entries))
	for _, e := range entries {
		results = append(results, runModule(ctx, c, e))
	}
	return results
}

func runModule(ctx context.Context, c *Context, e moduleEntry) (result *siteaudit.ModuleResult) {
	defer func() {
		if r := recover(); r != nil {
			result = newResult(e.def)
			result.Summary = fmt.Sprintf("internal_error: %v", r)
			result.Score = 0
			result.Issues.Critical++
		}
	}()
	return e.fn(ctx, c)
}

// definition returns the static definition for a module key.
func definition(key siteaudit.ModuleKey) siteaudit.ModuleDefinition {
	for _, def := range siteaudit.ModuleDefinitions() {
		if def.Key == key {
			return def
		}
	}
	return siteaudit.ModuleDefinition{Key: key}
}

// newResult initializes a ModuleResult from its definition.
func newResult(def siteaudit.ModuleDefinition) *siteaudit.ModuleResult {
	return &siteaudit.ModuleResult{
		Key:         def.Key,
		Label:       def.Label,
		Weight:      def.Weight,
		GeneratedAt: time.Now().UTC(),
	}
}

// severity classifies a rule violation.
type severity int

const (
	sevCritical severity = iota
	sevWarning
	sevInfo
)

// note records a rule violation: it increments the matching issue counter
// and appends the recommendation text.
func note(m *siteaudit.ModuleResult, sev severity, recommendation string) {
	switch sev {
	case sevCritical:
		m.Issues.Critical++
	case sevWarning:
		m.Issues.Warning++
	case sevInfo:
		m.Issues.Info++
	}
	m.Recommendations = append(m.Recommendations, recommendation)
}

// highlight appends a labeled display value.
func highlight(m *siteaudit.ModuleResult, label, value string, status siteaudit.Status) {
	m.Highlights = append(m.Highlights, siteaudit.Highlight{Label: label, Value: value, Status: status})
}

// finalize clamps and rounds the accumulated points into the module score.
func finalize(m *siteaudit.ModuleResult, points float64) {
	m.Score = siteaudit.ClampScore(siteaudit.Round2(points))
}
