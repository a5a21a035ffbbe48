package ratelimiter

import (
	"context"

	"golang.org/x/time/rate"
)

// OutboundLimiter paces calls against the upstream FHIR server so a scan
// cannot flood it. One limiter is shared by every resource client, so the
// cap applies to the whole process, not per resource type.
type OutboundLimiter struct {
	limiter *rate.Limiter
}

// NewOutboundLimiter constructs a limiter allowing requestsPerSecond
// sustained requests with a burst of the same size. Non-positive values
// fall back to 10 rps.
func NewOutboundLimiter(requestsPerSecond int) *OutboundLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 10
	}
	return &OutboundLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// Wait blocks until the next request is allowed or ctx is done.
func (l *OutboundLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
