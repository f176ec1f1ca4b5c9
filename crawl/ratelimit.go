package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/pagesift/pagesift"
	"golang.org/x/time/rate"
)

var _ pagesift.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces a fixed delay between successive requests to
// the same domain using token buckets. The first request to a domain
// passes immediately; subsequent ones wait out the delay. Separate
// domains never block each other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	delay    time.Duration
}

// NewDomainLimiter creates a DomainLimiter with the given inter-request
// delay. Each domain gets its own limiter with a burst of 1.
func NewDomainLimiter(delay time.Duration) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		delay:    delay,
	}
}

// Wait blocks until the delay since the previous request to the domain
// has elapsed. Returns an error if the context is canceled first.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(d.delay), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
