// Package slog provides logging decorators for siteaudit services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkowalczyk/siteaudit"
)

// Ensure LoggingAnalyzer implements siteaudit.Analyzer.
var _ siteaudit.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps an Analyzer with run-level logging.
type LoggingAnalyzer struct {
	next   siteaudit.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next siteaudit.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the run.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, rawURL string, opts siteaudit.AnalysisOptions) (result *siteaudit.AnalysisResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", rawURL,
			"strategy", string(opts.Strategy),
			"duration", time.Since(begin),
			"err", err,
		}
		if result != nil {
			attrs = append(attrs, "score", result.OverallScore, "finalURL", result.FinalURL)
		}
		a.logger.Info("analysis", attrs...)
	}(time.Now())
	return a.next.Analyze(ctx, rawURL, opts)
}
