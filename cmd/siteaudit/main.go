package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/mkowalczyk/siteaudit"
	"github.com/mkowalczyk/siteaudit/audit"
	"github.com/mkowalczyk/siteaudit/cache"
	"github.com/mkowalczyk/siteaudit/goquery"
	audithttp "github.com/mkowalczyk/siteaudit/http"
	auditslog "github.com/mkowalczyk/siteaudit/slog"
	"github.com/mkowalczyk/siteaudit/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the history store.
	DB *sqlite.DB

	// Analyzer for end-to-end testing.
	Analyzer siteaudit.Analyzer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("siteaudit"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'siteaudit --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SITEAUDIT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	if m.Analyzer == nil {
		m.Analyzer = buildAnalyzer(cli, m.DB, logger)
	}
	deps.DB = m.DB
	deps.Analyzer = m.Analyzer
	deps.History = sqlite.NewHistoryService(m.DB)

	return kongCtx.Run(deps)
}

// buildAnalyzer wires the full fetch-cache-score pipeline.
func buildAnalyzer(cli *CLI, db *sqlite.DB, logger *slog.Logger) siteaudit.Analyzer {
	auditOpts := []audithttp.AuditOption{}
	if cli.Analyze.AuditEndpoint != "" {
		auditOpts = append(auditOpts, audithttp.WithAuditEndpoint(cli.Analyze.AuditEndpoint))
	}
	if cli.Analyze.AuditAPIKey != "" {
		auditOpts = append(auditOpts, audithttp.WithAuditAPIKey(cli.Analyze.AuditAPIKey))
	}

	auditor := &audit.Auditor{
		Audits:   cache.NewAuditService(audithttp.NewAuditService(auditOpts...)),
		Pages:    cache.NewPageService(auditslog.NewLoggingPageService(audithttp.NewPageService(), logger)),
		Robots:   cache.NewRobotsService(audithttp.NewRobotsService()),
		Sitemaps: cache.NewSitemapService(audithttp.NewSitemapService()),
		Geo:      cache.NewGeoService(audithttp.NewGeoService()),
		Schemas:  goquery.NewSchemaService(),
		Prober:   audithttp.NewProber(),
		History:  sqlite.NewHistoryService(db),
	}
	if cli.Analyze.Timeout > 0 {
		auditor.Deadline = cli.Analyze.Timeout
	}

	return auditslog.NewLoggingAnalyzer(auditor, logger)
}

func defaultDBPath() string {
	if path := os.Getenv("SITEAUDIT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "siteaudit.db"
	}
	dir := filepath.Join(home, ".siteaudit")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "siteaudit.db")
}
