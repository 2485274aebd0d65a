package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces outbound GitHub API requests so an unauthenticated scan
// does not burn through the hourly quota in the first few pages.
type Limiter struct {
	github *rate.Limiter
}

func New(githubReqPerMin int) *Limiter {
	return &Limiter{
		github: rate.NewLimiter(rate.Limit(float64(githubReqPerMin)/60.0), githubReqPerMin),
	}
}

func (l *Limiter) WaitGithub(ctx context.Context) error {
	return l.github.Wait(ctx)
}
