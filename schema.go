package siteaudit

import "context"

// SchemaReport is the output of the structured-data validation collaborator.
type SchemaReport struct {
	// Types lists the detected schema.org type names, de-duplicated,
	// in document order.
	Types []string `json:"types"`

	// Failures counts structured-data blocks that failed validation.
	Failures int `json:"failures"`

	// Warnings counts non-fatal validator findings.
	Warnings int `json:"warnings"`
}

// HasType reports whether the named schema type was detected.
func (r *SchemaReport) HasType(name string) bool {
	if r == nil {
		return false
	}
	for _, t := range r.Types {
		if t == name {
			return true
		}
	}
	return false
}

// SchemaService validates structured data in raw HTML.
type SchemaService interface {
	Validate(ctx context.Context, html string) (*SchemaReport, error)
}
