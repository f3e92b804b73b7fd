package siteaudit

import "context"

// PerfAudit is the payload returned by the external performance-audit
// provider, reduced to the pieces the scoring engine consumes.
type PerfAudit struct {
	// Score is the performance category score in [0,1].
	Score float64 `json:"score"`

	// Categories maps category keys to their [0,1] scores.
	Categories map[string]float64 `json:"categories"`

	// Audits maps named audits (by provider audit ID) to their values.
	Audits map[string]AuditMetric `json:"audits"`

	// Raw is the provider's results payload, preserved for export.
	Raw []byte `json:"-"`
}

// AuditMetric is one named audit from the performance provider.
type AuditMetric struct {
	NumericValue float64 `json:"numericValue"`
	DisplayValue string  `json:"displayValue"`
}

// Metric returns the named audit's numeric value, or 0 if absent.
func (p *PerfAudit) Metric(id string) float64 {
	if p == nil {
		return 0
	}
	return p.Audits[id].NumericValue
}

// AuditRequest identifies one performance-audit fetch. All fields that
// affect the provider's response participate in the cache key.
type AuditRequest struct {
	URL       string
	Strategy  Strategy
	Locale    string
	SkipCache bool
}

// AuditService fetches the performance-audit payload for a page.
type AuditService interface {
	// Audit requests an audit for the fixed category set. Returns
	// EUNAVAILABLE when the provider response lacks a results payload.
	Audit(ctx context.Context, req AuditRequest) (*PerfAudit, error)
}
