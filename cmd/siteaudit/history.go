package main

import (
	"fmt"
	"time"

	"github.com/mkowalczyk/siteaudit"
)

const timePrecision = 10 * time.Millisecond

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	url, err := siteaudit.NormalizeURL(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteaudit.ErrorMessage(err))
		return err
	}

	snapshots, err := deps.History.RecentSnapshots(deps.Ctx, url, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteaudit.ErrorMessage(err))
		return err
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Use 'siteaudit analyze' to record one.")
		return nil
	}

	for _, s := range snapshots {
		fmt.Fprintf(deps.Stdout, "%s  %5.2f  %s\n", s.CreatedAt.Format(time.RFC3339), s.Score, s.Strategy)
	}

	return nil
}
