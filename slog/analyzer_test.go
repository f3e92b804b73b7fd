package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mkowalczyk/siteaudit"
	"github.com/mkowalczyk/siteaudit/mock"
	auditslog "github.com/mkowalczyk/siteaudit/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("logs run with score and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Analyzer{
			AnalyzeFn: func(ctx context.Context, rawURL string, opts siteaudit.AnalysisOptions) (*siteaudit.AnalysisResult, error) {
				return &siteaudit.AnalysisResult{
					RequestedURL: rawURL,
					FinalURL:     "https://example.com/",
					OverallScore: 7.4,
				}, nil
			},
		}

		analyzer := auditslog.NewLoggingAnalyzer(inner, logger)
		result, err := analyzer.Analyze(context.Background(), "https://example.com", siteaudit.AnalysisOptions{Strategy: siteaudit.StrategyMobile})

		require.NoError(t, err)
		assert.Equal(t, 7.4, result.OverallScore)
		output := buf.String()
		assert.Contains(t, output, "analysis")
		assert.Contains(t, output, "url=https://example.com")
		assert.Contains(t, output, "score=7.4")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Analyzer{
			AnalyzeFn: func(ctx context.Context, rawURL string, opts siteaudit.AnalysisOptions) (*siteaudit.AnalysisResult, error) {
				return nil, errors.New("connection failed")
			},
		}

		analyzer := auditslog.NewLoggingAnalyzer(inner, logger)
		_, err := analyzer.Analyze(context.Background(), "https://example.com", siteaudit.AnalysisOptions{})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "analysis")
		assert.Contains(t, output, "err=\"connection failed\"")
	})
}
