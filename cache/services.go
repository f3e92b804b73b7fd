package cache

import (
	"context"
	"time"

	"github.com/mkowalczyk/siteaudit"
)

// Default TTLs per fetch source. Geo data changes rarely and gets a long TTL.
const (
	AuditTTL   = 30 * time.Minute
	PageTTL    = 10 * time.Minute
	RobotsTTL  = 30 * time.Minute
	SitemapTTL = 30 * time.Minute
	GeoTTL     = 24 * time.Hour
)

// Compile-time interface verification.
var (
	_ siteaudit.AuditService   = (*AuditService)(nil)
	_ siteaudit.PageService    = (*PageService)(nil)
	_ siteaudit.RobotsService  = (*RobotsService)(nil)
	_ siteaudit.SitemapService = (*SitemapService)(nil)
	_ siteaudit.GeoService     = (*GeoService)(nil)
)

// AuditService wraps a siteaudit.AuditService with a TTL cache keyed by
// strategy, locale and URL.
type AuditService struct {
	next  siteaudit.AuditService
	store *Store[*siteaudit.PerfAudit]
}

// NewAuditService creates a caching AuditService decorator.
func NewAuditService(next siteaudit.AuditService) *AuditService {
	return &AuditService{next: next, store: New[*siteaudit.PerfAudit](AuditTTL)}
}

// Audit delegates to the wrapped service, caching successful results.
func (s *AuditService) Audit(ctx context.Context, req siteaudit.AuditRequest) (*siteaudit.PerfAudit, error) {
	key := Key("audit", string(req.Strategy), req.Locale, req.URL)
	if !req.SkipCache {
		if v, ok := s.store.Get(key); ok {
			return v, nil
		}
	}
	v, err := s.next.Audit(ctx, req)
	if err != nil {
		return nil, err
	}
	s.store.Set(key, v)
	return v, nil
}

// PageService wraps a siteaudit.PageService with a TTL cache keyed by URL.
type PageService struct {
	next  siteaudit.PageService
	store *Store[*siteaudit.Page]
}

// NewPageService creates a caching PageService decorator.
func NewPageService(next siteaudit.PageService) *PageService {
	return &PageService{next: next, store: New[*siteaudit.Page](PageTTL)}
}

// FetchPage delegates to the wrapped service, caching successful results.
func (s *PageService) FetchPage(ctx context.Context, req siteaudit.PageRequest) (*siteaudit.Page, error) {
	key := Key("page", req.URL)
	if !req.SkipCache {
		if v, ok := s.store.Get(key); ok {
			return v, nil
		}
	}
	v, err := s.next.FetchPage(ctx, req)
	if err != nil {
		return nil, err
	}
	s.store.Set(key, v)
	return v, nil
}

// RobotsService wraps a siteaudit.RobotsService with a TTL cache keyed by
// origin and path.
type RobotsService struct {
	next  siteaudit.RobotsService
	store *Store[*siteaudit.Robots]
}

// NewRobotsService creates a caching RobotsService decorator.
func NewRobotsService(next siteaudit.RobotsService) *RobotsService {
	return &RobotsService{next: next, store: New[*siteaudit.Robots](RobotsTTL)}
}

// FetchRobots delegates to the wrapped service, caching results.
// Absent robots data is cached too: a missing robots.txt is a valid answer.
func (s *RobotsService) FetchRobots(ctx context.Context, req siteaudit.RobotsRequest) (*siteaudit.Robots, error) {
	key := Key("robots", req.Origin, req.Path)
	if !req.SkipCache {
		if v, ok := s.store.Get(key); ok {
			return v, nil
		}
	}
	v, err := s.next.FetchRobots(ctx, req)
	if err != nil {
		return nil, err
	}
	s.store.Set(key, v)
	return v, nil
}

// SitemapService wraps a siteaudit.SitemapService with a TTL cache keyed by
// origin and candidate list.
type SitemapService struct {
	next  siteaudit.SitemapService
	store *Store[*siteaudit.Sitemap]
}

// NewSitemapService creates a caching SitemapService decorator.
func NewSitemapService(next siteaudit.SitemapService) *SitemapService {
	return &SitemapService{next: next, store: New[*siteaudit.Sitemap](SitemapTTL)}
}

// Discover delegates to the wrapped service, caching results.
func (s *SitemapService) Discover(ctx context.Context, req siteaudit.SitemapRequest) (*siteaudit.Sitemap, error) {
	parts := append([]string{"sitemap", req.Origin}, req.Candidates...)
	key := Key(parts...)
	if !req.SkipCache {
		if v, ok := s.store.Get(key); ok {
			return v, nil
		}
	}
	v, err := s.next.Discover(ctx, req)
	if err != nil {
		return nil, err
	}
	s.store.Set(key, v)
	return v, nil
}

// GeoService wraps a siteaudit.GeoService with a TTL cache keyed by hostname.
type GeoService struct {
	next  siteaudit.GeoService
	store *Store[*siteaudit.GeoLocation]
}

// NewGeoService creates a caching GeoService decorator.
func NewGeoService(next siteaudit.GeoService) *GeoService {
	return &GeoService{next: next, store: New[*siteaudit.GeoLocation](GeoTTL)}
}

// Lookup delegates to the wrapped service, caching successful lookups.
// Failed (nil) lookups are not cached so a transient provider outage does
// not pin an absent result for a day.
func (s *GeoService) Lookup(ctx context.Context, req siteaudit.GeoRequest) (*siteaudit.GeoLocation, error) {
	key := Key("geo", req.Host)
	if !req.SkipCache {
		if v, ok := s.store.Get(key); ok {
			return v, nil
		}
	}
	v, err := s.next.Lookup(ctx, req)
	if err != nil || v == nil {
		return v, err
	}
	s.store.Set(key, v)
	return v, nil
}
