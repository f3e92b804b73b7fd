package mock

import (
	"context"

	"github.com/mkowalczyk/siteaudit"
)

var _ siteaudit.LinkProber = (*LinkProber)(nil)

// LinkProber is a mock implementation of siteaudit.LinkProber.
type LinkProber struct {
	ProbeFn func(ctx context.Context, url string) (int, error)
}

func (p *LinkProber) Probe(ctx context.Context, url string) (int, error) {
	return p.ProbeFn(ctx, url)
}
