package main

import (
	"encoding/json"
	"fmt"

	"github.com/mkowalczyk/siteaudit"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	result, err := deps.Analyzer.Analyze(deps.Ctx, c.URL, siteaudit.AnalysisOptions{
		Strategy:  siteaudit.Strategy(c.Strategy),
		Locale:    c.Locale,
		SkipCache: c.SkipCache,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteaudit.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(deps.Stdout, "%s  overall %.2f/10  (%s, %s)\n\n", result.FinalURL, result.OverallScore, result.Strategy, result.Elapsed.Round(timePrecision))
	for _, m := range result.Modules {
		fmt.Fprintf(deps.Stdout, "%-16s %5.2f/10  %s\n", m.Label, m.Score, m.Summary)
		for _, rec := range m.Recommendations {
			fmt.Fprintf(deps.Stdout, "  - %s\n", rec)
		}
	}

	if len(result.History) > 1 {
		fmt.Fprintf(deps.Stdout, "\nRecent scores:")
		for _, s := range result.History {
			fmt.Fprintf(deps.Stdout, " %.2f", s.Score)
		}
		fmt.Fprintln(deps.Stdout)
	}

	return nil
}
