// Package audit provides the analysis orchestration and scoring engine.
// It fans out concurrent data-collection calls to heterogeneous sources,
// scores eight independent modules over the assembled context, and
// aggregates them into one weighted score under a hard run deadline.
package audit

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/mkowalczyk/siteaudit"
	"golang.org/x/sync/errgroup"
)

// DefaultDeadline is the hard deadline for one analysis run, measured from
// run start. There is no progress-based extension.
const DefaultDeadline = 90 * time.Second

// DefaultHistoryLimit is how many historical snapshots are attached to a
// result when a history store is configured.
const DefaultHistoryLimit = 10

// Ensure Auditor implements siteaudit.Analyzer.
var _ siteaudit.Analyzer = (*Auditor)(nil)

// Auditor orchestrates the full audit pipeline.
type Auditor struct {
	Audits   siteaudit.AuditService
	Pages    siteaudit.PageService
	Robots   siteaudit.RobotsService
	Sitemaps siteaudit.SitemapService
	Geo      siteaudit.GeoService
	Schemas  siteaudit.SchemaService
	Prober   siteaudit.LinkProber

	// History is optional; when set, a snapshot of each completed run is
	// recorded and recent history is attached to results.
	History siteaudit.HistoryService

	// Deadline overrides DefaultDeadline when positive.
	Deadline time.Duration

	// HistoryLimit overrides DefaultHistoryLimit when positive.
	HistoryLimit int
}

// Analyze runs the whole pipeline: normalize input, fan out the primary
// fetches (performance audit, HTML, robots), then from the final origin fan
// out the secondary fetches (sitemap, geo, link sample, structured data),
// build the immutable context, score all modules and aggregate.
//
// The performance audit and HTML fetch are fatal on failure; everything
// else degrades to absent. A deadline hit returns ETIMEOUT; an external
// cancellation propagates the caller's cause.
func (a *Auditor) Analyze(ctx context.Context, rawURL string, opts siteaudit.AnalysisOptions) (*siteaudit.AnalysisResult, error) {
	started := time.Now().UTC()

	normalized, err := siteaudit.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = siteaudit.StrategyMobile
	}
	locale := opts.Locale
	if locale == "" {
		locale = "en-US"
	}

	deadline := a.Deadline
	if deadline <= 0 {
		deadline = DefaultDeadline
	}
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	// Primary fan-out: audit payload, HTML document, robots directives.
	var (
		perf   *siteaudit.PerfAudit
		page   *siteaudit.Page
		robots *siteaudit.Robots
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		perf, err = a.Audits.Audit(gctx, siteaudit.AuditRequest{
			URL:       normalized,
			Strategy:  strategy,
			Locale:    locale,
			SkipCache: opts.SkipCache,
		})
		return err
	})
	g.Go(func() error {
		var err error
		page, err = a.Pages.FetchPage(gctx, siteaudit.PageRequest{URL: normalized, SkipCache: opts.SkipCache})
		return err
	})
	g.Go(func() error {
		// Robots data is best-effort; only cancellation propagates.
		r, err := a.Robots.FetchRobots(gctx, robotsRequest(normalized, opts.SkipCache))
		if err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			r = &siteaudit.Robots{Found: false, PathAllowed: true}
		}
		robots = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, runError(ctx, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, siteaudit.Errorf(siteaudit.EINVALID, "unparseable HTML for %s", page.FinalURL)
	}

	finalURL, err := urlParse(page.FinalURL)
	if err != nil {
		return nil, err
	}
	origin := originOf(finalURL)

	// Secondary fan-out from the final origin: none of these may fail the
	// run; each degrades to absent on internal error.
	var (
		sitemap *siteaudit.Sitemap
		geo     *siteaudit.GeoLocation
		links   *siteaudit.LinkSample
		schema  *siteaudit.SchemaReport
	)
	g2, g2ctx := errgroup.WithContext(ctx)
	g2.Go(func() error {
		sm, err := a.Sitemaps.Discover(g2ctx, siteaudit.SitemapRequest{
			Origin:     origin,
			Candidates: robots.SitemapURLs,
			SkipCache:  opts.SkipCache,
		})
		if err == nil {
			sitemap = sm
		}
		return nil
	})
	g2.Go(func() error {
		loc, err := a.Geo.Lookup(g2ctx, siteaudit.GeoRequest{Host: finalURL.Hostname(), SkipCache: opts.SkipCache})
		if err == nil {
			geo = loc
		}
		return nil
	})
	g2.Go(func() error {
		links = a.sampleLinks(g2ctx, doc, finalURL)
		return nil
	})
	g2.Go(func() error {
		report, err := a.Schemas.Validate(g2ctx, page.HTML)
		if err == nil {
			schema = report
		}
		return nil
	})
	_ = g2.Wait()

	if err := ctx.Err(); err != nil {
		return nil, runError(ctx, err)
	}

	c := &Context{
		RequestedURL:  normalized,
		FinalURL:      page.FinalURL,
		Origin:        finalURL,
		Strategy:      strategy,
		Locale:        locale,
		TargetCountry: targetCountry(locale),
		Perf:          perf,
		Page:          page,
		Doc:           doc,
		Robots:        robots,
		Sitemap:       sitemap,
		Geo:           geo,
		Links:         links,
		Schema:        schema,
	}

	modules := a.runModules(ctx, c)
	overall := siteaudit.WeightedScore(modules)

	finished := time.Now().UTC()
	result := &siteaudit.AnalysisResult{
		ID:            uuid.New().String(),
		RequestedURL:  normalized,
		FinalURL:      page.FinalURL,
		Strategy:      strategy,
		Locale:        locale,
		TargetCountry: c.TargetCountry,
		OverallScore:  overall,
		Modules:       modules,
		Raw: &siteaudit.RawPayloads{
			Audit:       perf.Raw,
			HTML:        page.HTML,
			ContentHash: strconv.FormatUint(xxhash.Sum64String(page.HTML), 16),
			Headers:     page.Headers,
			Robots:      robots.Body,
			Sitemap:     sitemap,
			Geo:         geo,
			Links:       links,
			Schema:      schema,
		},
		StartedAt:  started,
		FinishedAt: finished,
		Elapsed:    finished.Sub(started),
	}

	a.recordHistory(ctx, result)

	return result, nil
}

// recordHistory saves a snapshot and attaches recent history. History is
// best-effort: store failures leave the result without history.
func (a *Auditor) recordHistory(ctx context.Context, result *siteaudit.AnalysisResult) {
	if a.History == nil {
		return
	}
	snapshot := &siteaudit.ScoreSnapshot{
		URL:      result.RequestedURL,
		Strategy: result.Strategy,
		Score:    result.OverallScore,
	}
	if err := a.History.SaveSnapshot(ctx, snapshot); err != nil {
		return
	}
	limit := a.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if history, err := a.History.RecentSnapshots(ctx, result.RequestedURL, limit); err == nil {
		result.History = history
	}
}

// runError maps a run failure to the error taxonomy: a deadline hit becomes
// ETIMEOUT, an external cancellation propagates as-is.
func runError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return siteaudit.Errorf(siteaudit.ETIMEOUT, "analysis deadline exceeded")
	}
	return err
}

// robotsRequest derives the robots fetch request from a normalized URL.
func robotsRequest(normalized string, skipCache bool) siteaudit.RobotsRequest {
	u, err := urlParse(normalized)
	if err != nil {
		return siteaudit.RobotsRequest{Origin: normalized, Path: "/", SkipCache: skipCache}
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return siteaudit.RobotsRequest{Origin: originOf(u), Path: path, SkipCache: skipCache}
}
