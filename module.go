package siteaudit

import (
	"math"
	"time"
)

// ModuleKey identifies one of the fixed scoring categories.
type ModuleKey string

// The eight scoring modules. The set is fixed; their weights sum to 100.
const (
	ModulePerformance   ModuleKey = "performance"
	ModuleSchema        ModuleKey = "schema"
	ModuleGeo           ModuleKey = "geo"
	ModuleSEOBasics     ModuleKey = "seo_basics"
	ModuleSocial        ModuleKey = "social"
	ModuleSecurity      ModuleKey = "security"
	ModuleAccessibility ModuleKey = "accessibility"
	ModuleLinks         ModuleKey = "links"
)

// ModuleDefinition describes a scoring module. Definitions are static,
// process-wide and never mutated after startup.
type ModuleDefinition struct {
	Key         ModuleKey `json:"key"`
	Label       string    `json:"label"`
	Weight      int       `json:"weight"`
	Description string    `json:"description"`
}

// ModuleDefinitions returns the fixed, ordered module set.
// The order is the deterministic output order of analysis results.
func ModuleDefinitions() []ModuleDefinition {
	return []ModuleDefinition{
		{Key: ModulePerformance, Label: "Performance", Weight: 15, Description: "Core Web Vitals and lab performance metrics."},
		{Key: ModuleSchema, Label: "Structured Data", Weight: 15, Description: "Schema.org markup coverage and validity."},
		{Key: ModuleGeo, Label: "Geo & Hreflang", Weight: 15, Description: "Language and country targeting signals."},
		{Key: ModuleSEOBasics, Label: "SEO Basics", Weight: 20, Description: "Title, description, canonical, indexability and sitemap."},
		{Key: ModuleSocial, Label: "Social", Weight: 10, Description: "Open Graph and Twitter card metadata."},
		{Key: ModuleSecurity, Label: "Security", Weight: 10, Description: "HTTPS and security response headers."},
		{Key: ModuleAccessibility, Label: "Accessibility", Weight: 10, Description: "Alt text coverage and landmark structure."},
		{Key: ModuleLinks, Label: "Links", Weight: 5, Description: "Sampled link health and nofollow usage."},
	}
}

// Status classifies a highlight value for presentation.
type Status string

// Highlight statuses.
const (
	StatusGood Status = "good"
	StatusWarn Status = "warn"
	StatusInfo Status = "info"
	StatusPoor Status = "poor"
)

// Highlight is a labeled display value with a coarse classification.
// Highlights are presentation metadata and never feed back into scoring.
type Highlight struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Status Status `json:"status"`
}

// IssueCounts tracks how many rule violations a module found, by severity.
type IssueCounts struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}

// ModuleResult is the outcome of one module computation for one analysis run.
type ModuleResult struct {
	Key             ModuleKey   `json:"key"`
	Label           string      `json:"label"`
	Weight          int         `json:"weight"`
	Score           float64     `json:"score"`
	Summary         string      `json:"summary"`
	Recommendations []string    `json:"recommendations"`
	Issues          IssueCounts `json:"issues"`
	Highlights      []Highlight `json:"highlights"`

	// Details holds a module-specific detail struct (e.g. the raw metric
	// values the performance module scored against). Its concrete type is
	// fixed per module key.
	Details any `json:"details,omitempty"`

	GeneratedAt time.Time `json:"generatedAt"`
}

// WeightedScore combines per-module scores into one overall score,
// proportionally to each module's weight, clamped to [0,10] and rounded to
// two decimals. An empty module list yields 0.
//
// WeightedScore is a pure function and is safe to call standalone, e.g. to
// re-aggregate after a single module has been re-checked in isolation.
func WeightedScore(modules []*ModuleResult) float64 {
	if len(modules) == 0 {
		return 0
	}
	var sum, weights float64
	for _, m := range modules {
		sum += m.Score * float64(m.Weight)
		weights += float64(m.Weight)
	}
	if weights == 0 {
		return 0
	}
	return ClampScore(Round2(sum / weights))
}

// Round2 rounds a score to two-decimal precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ClampScore clamps a score into the valid [0,10] range.
func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
