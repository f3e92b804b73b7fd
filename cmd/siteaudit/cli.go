package main

import (
	"context"
	"io"
	"time"

	"github.com/mkowalczyk/siteaudit"
	"github.com/mkowalczyk/siteaudit/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Analyzer siteaudit.Analyzer
	History  siteaudit.HistoryService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Analyze AnalyzeCmd `cmd:"" help:"Audit a page and print its scores"`
	History HistoryCmd `cmd:"" help:"Show recent overall scores for a URL"`

	Verbose bool `short:"v" help:"Enable debug logging"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL       string        `arg:"" help:"Page URL to audit"`
	Strategy  string        `short:"s" default:"mobile" enum:"mobile,desktop" help:"Device profile for the performance audit"`
	Locale    string        `short:"l" default:"en-US" help:"Locale for the performance audit and geo scoring"`
	Timeout   time.Duration `help:"Hard deadline for the run (default 90s)"`
	SkipCache bool          `help:"Bypass cached fetch results"`
	JSON      bool          `short:"j" help:"Print the full result as JSON"`

	AuditEndpoint string `env:"SITEAUDIT_AUDIT_ENDPOINT" hidden:""`
	AuditAPIKey   string `env:"SITEAUDIT_AUDIT_API_KEY" help:"API key for the performance-audit provider"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL   string `arg:"" help:"Page URL"`
	Limit int    `default:"10" help:"Maximum snapshots to show"`
}
