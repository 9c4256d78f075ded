package scanner

import "golang.org/x/time/rate"

// newLimiter builds a token-bucket limiter for one external service
// class (a DNS backend or the HTTP prober), allowing perSecond calls
// per second with a burst of one so a cold start doesn't front-load a
// spike of simultaneous requests. Grounded on the executor pattern that
// holds `rateLimiter *rate.Limiter` directly on the scheduling struct,
// per §4.5 and §5.
func newLimiter(perSecond float64) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

// NewRateLimiter is the exported form of newLimiter, for callers that
// need to share one limiter across the controller and the resolver
// layer it drives (so DNS calls and scan-wide pacing draw from the same
// budget instead of stacking two independent limits).
func NewRateLimiter(perSecond float64) *rate.Limiter {
	return newLimiter(perSecond)
}
