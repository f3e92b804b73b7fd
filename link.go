package siteaudit

import "context"

// LinkCheck is the probe outcome for one sampled link.
type LinkCheck struct {
	URL        string `json:"url"`
	StatusCode int    `json:"statusCode"`
	OK         bool   `json:"ok"`
	Rel        string `json:"rel,omitempty"`
}

// LinkSample summarizes the bounded same-origin link health sample.
type LinkSample struct {
	// TotalCandidates is the number of distinct same-origin links retained,
	// capped at the sample limit.
	TotalCandidates int `json:"totalCandidates"`

	Checked []LinkCheck `json:"checked"`
	Broken  []LinkCheck `json:"broken,omitempty"`

	// NofollowCount is the number of candidates whose rel attribute
	// contains "nofollow".
	NofollowCount int `json:"nofollowCount"`
}

// BrokenRatio returns the fraction of checked links that are broken.
func (s *LinkSample) BrokenRatio() float64 {
	if s == nil || len(s.Checked) == 0 {
		return 0
	}
	return float64(len(s.Broken)) / float64(len(s.Checked))
}

// NofollowRatio returns the fraction of candidates marked nofollow.
func (s *LinkSample) NofollowRatio() float64 {
	if s == nil || s.TotalCandidates == 0 {
		return 0
	}
	return float64(s.NofollowCount) / float64(s.TotalCandidates)
}

// LinkProber issues a lightweight reachability probe for a single URL.
type LinkProber interface {
	// Probe returns the HTTP status obtained for the URL. A transport
	// error returns a zero status and a non-nil error.
	Probe(ctx context.Context, url string) (statusCode int, err error)
}
