package mock

import (
	"context"

	"github.com/mkowalczyk/siteaudit"
)

var _ siteaudit.RobotsService = (*RobotsService)(nil)

// RobotsService is a mock implementation of siteaudit.RobotsService.
type RobotsService struct {
	FetchRobotsFn func(ctx context.Context, req siteaudit.RobotsRequest) (*siteaudit.Robots, error)
}

func (s *RobotsService) FetchRobots(ctx context.Context, req siteaudit.RobotsRequest) (*siteaudit.Robots, error) {
	return s.FetchRobotsFn(ctx, req)
}
