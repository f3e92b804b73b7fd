package http

import (
	"context"
	"net/http"
	"time"

	"github.com/mkowalczyk/siteaudit"
	"golang.org/x/time/rate"
)

// DefaultProbeTimeout is the per-probe request timeout.
const DefaultProbeTimeout = 5 * time.Second

// DefaultProbeRate limits probes per second so an audit stays polite to the
// target site even across concurrent runs.
const DefaultProbeRate = 10

// Ensure Prober implements siteaudit.LinkProber.
var _ siteaudit.LinkProber = (*Prober)(nil)

// Prober issues rate-limited HEAD requests to classify link health.
type Prober struct {
	client  *http.Client
	limiter *rate.Limiter
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithProbeTimeout overrides the per-probe timeout.
func WithProbeTimeout(d time.Duration) ProberOption {
	return func(p *Prober) { p.client.Timeout = d }
}

// WithProbeRate overrides the probes-per-second limit.
func WithProbeRate(rps float64) ProberOption {
	return func(p *Prober) { p.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// NewProber creates a Prober with defaults.
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		client:  &http.Client{Timeout: DefaultProbeTimeout},
		limiter: rate.NewLimiter(rate.Limit(DefaultProbeRate), 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe issues a HEAD request and returns the obtained status code.
func (p *Prober) Probe(ctx context.Context, url string) (int, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()

	return resp.StatusCode, nil
}
