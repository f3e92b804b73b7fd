package siteaudit

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Strategy selects the device profile for the performance audit.
type Strategy string

// Supported device strategies.
const (
	StrategyMobile  Strategy = "mobile"
	StrategyDesktop Strategy = "desktop"
)

// AnalysisOptions are the caller-supplied knobs for a single analysis run.
type AnalysisOptions struct {
	// Strategy defaults to StrategyMobile when empty.
	Strategy Strategy

	// Locale is a BCP 47 tag ("de-DE", "en"). Defaults to "en-US".
	Locale string

	// SkipCache bypasses fetch-layer caches for this run.
	SkipCache bool
}

// AnalysisResult is the engine's output for one run.
type AnalysisResult struct {
	ID            string   `json:"id"`
	RequestedURL  string   `json:"requestedUrl"`
	FinalURL      string   `json:"finalUrl"`
	Strategy      Strategy `json:"strategy"`
	Locale        string   `json:"locale"`
	TargetCountry string   `json:"targetCountry,omitempty"`

	OverallScore float64         `json:"overallScore"`
	Modules      []*ModuleResult `json:"modules"`

	// Raw carries the underlying fetched payloads for downstream
	// export and debugging.
	Raw *RawPayloads `json:"raw,omitempty"`

	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	Elapsed    time.Duration `json:"elapsed"`

	// History holds recent overall-score snapshots for the same normalized
	// URL, supplied by a HistoryService collaborator. Empty when no history
	// store is configured.
	History []ScoreSnapshot `json:"history,omitempty"`
}

// RawPayloads bundles the collected source data behind an analysis.
type RawPayloads struct {
	Audit       []byte       `json:"audit,omitempty"`
	HTML        string       `json:"html,omitempty"`
	ContentHash string       `json:"contentHash,omitempty"`
	Headers     Headers      `json:"headers,omitempty"`
	Robots      string       `json:"robots,omitempty"`
	Sitemap     *Sitemap     `json:"sitemap,omitempty"`
	Geo         *GeoLocation `json:"geo,omitempty"`
	Links       *LinkSample  `json:"links,omitempty"`
	Schema      *SchemaReport `json:"schema,omitempty"`
}

// ScoreSnapshot is one historical overall score for a normalized URL.
type ScoreSnapshot struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Strategy  Strategy  `json:"strategy"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *ScoreSnapshot) Validate() error {
	if s.URL == "" {
		return Errorf(EINVALID, "snapshot URL required")
	}
	if s.Score < 0 || s.Score > 10 {
		return Errorf(EINVALID, "snapshot score out of range")
	}
	return nil
}

// Analyzer runs the full audit pipeline for a single page.
type Analyzer interface {
	// Analyze fetches all signal sources for the URL, scores every module
	// and aggregates the result. The context carries the caller's
	// cancellation signal; the implementation adds its own hard deadline.
	//
	// Returns ETIMEOUT when the deadline fires before the run completes and
	// EINVALID for unusable input URLs or non-HTML targets.
	Analyze(ctx context.Context, rawURL string, opts AnalysisOptions) (*AnalysisResult, error)
}

// HistoryService stores and retrieves overall-score snapshots.
type HistoryService interface {
	// SaveSnapshot persists a snapshot. The ID is assigned by the store.
	SaveSnapshot(ctx context.Context, snapshot *ScoreSnapshot) error

	// RecentSnapshots returns up to limit snapshots for the normalized URL,
	// most recent first.
	RecentSnapshots(ctx context.Context, url string, limit int) ([]ScoreSnapshot, error)
}

// NormalizeURL validates a raw input URL and returns its canonical form:
// scheme defaulted to https, host required, fragment stripped.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", Errorf(EINVALID, "URL required")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", raw)
	}
	u.Fragment = ""
	return u.String(), nil
}
