package worker

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// DomainLimiter rate limits outbound requests per host so that bursts
// of link checks and document downloads stay polite to any single site.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewDomainLimiter creates a limiter allowing rps requests per second
// with the given burst per distinct host
func NewDomainLimiter(rps float64, burst int) *DomainLimiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

// Wait blocks until a request to rawURL's host is permitted or the
// context is cancelled
func (d *DomainLimiter) Wait(ctx context.Context, rawURL string) error {
	return d.limiterFor(rawURL).Wait(ctx)
}

func (d *DomainLimiter) limiterFor(rawURL string) *rate.Limiter {
	host := hostKey(rawURL)

	d.mu.Lock()
	defer d.mu.Unlock()

	lim, ok := d.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(d.rps), d.burst)
		d.limiters[host] = lim
	}
	return lim
}

func hostKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return strings.ToLower(u.Host)
}
