package mock

import (
	"context"

	"github.com/mkowalczyk/siteaudit"
)

var _ siteaudit.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of siteaudit.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, rawURL string, opts siteaudit.AnalysisOptions) (*siteaudit.AnalysisResult, error)
}

func (a *Analyzer) Analyze(ctx context.Context, rawURL string, opts siteaudit.AnalysisOptions) (*siteaudit.AnalysisResult, error) {
	return a.AnalyzeFn(ctx, rawURL, opts)
}
