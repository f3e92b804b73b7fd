package audit

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkowalczyk/siteaudit"
)

// Link sampling bounds: at most sampleCap distinct same-origin links are
// retained and at most sampleWorkers probes run concurrently.
const (
	sampleCap     = 50
	sampleWorkers = 5
)

// candidate is one link retained for probing.
type candidate struct {
	index int
	url   string
	rel   string
}

// skippedSchemes are href schemes that are never probed.
var skippedSchemes = []string{"javascript:", "mailto:", "tel:"}

// sampleLinks extracts same-origin hyperlinks in document order and probes
// a bounded sample with bounded concurrency. Workers observe cancellation
// between queue pulls, so queued-but-unstarted probes are skipped once the
// run is aborted.
func (a *Auditor) sampleLinks(ctx context.Context, doc *goquery.Document, origin *url.URL) *siteaudit.LinkSample {
	candidates := collectCandidates(doc, origin)

	sample := &siteaudit.LinkSample{
		TotalCandidates: len(candidates),
		Checked:         make([]siteaudit.LinkCheck, len(candidates)),
	}
	for _, cand := range candidates {
		sample.Checked[cand.index] = siteaudit.LinkCheck{URL: cand.url, Rel: cand.rel}
		if strings.Contains(cand.rel, "nofollow") {
			sample.NofollowCount++
		}
	}

	queue := make(chan candidate)
	var wg sync.WaitGroup
	for i := 0; i < sampleWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case cand, ok := <-queue:
					if !ok {
						return
					}
					status, err := a.Prober.Probe(ctx, cand.url)
					check := &sample.Checked[cand.index]
					check.StatusCode = status
					check.OK = err == nil && status > 0 && status < 400
				}
			}
		}()
	}

feed:
	for _, cand := range candidates {
		select {
		case <-ctx.Done():
			break feed
		case queue <- cand:
		}
	}
	close(queue)
	wg.Wait()

	for _, check := range sample.Checked {
		if !check.OK {
			sample.Broken = append(sample.Broken, check)
		}
	}
	return sample
}

// collectCandidates walks all <a href> nodes in document order, resolves
// each href against the origin, discards non-HTTP schemes and cross-origin
// targets, de-duplicates by resolved URL and stops at the sample cap.
func collectCandidates(doc *goquery.Document, origin *url.URL) []candidate {
	var candidates []candidate
	seen := make(map[string]bool)

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || href == "#" {
			return true
		}
		lower := strings.ToLower(href)
		for _, scheme := range skippedSchemes {
			if strings.HasPrefix(lower, scheme) {
				return true
			}
		}

		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		resolved := origin.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return true
		}
		if !strings.EqualFold(resolved.Host, origin.Host) {
			return true
		}
		resolved.Fragment = ""

		abs := resolved.String()
		if seen[abs] {
			return true
		}
		seen[abs] = true

		rel, _ := sel.Attr("rel")
		candidates = append(candidates, candidate{
			index: len(candidates),
			url:   abs,
			rel:   strings.ToLower(rel),
		})
		return len(candidates) < sampleCap
	})

	return candidates
}
