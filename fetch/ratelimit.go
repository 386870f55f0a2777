package fetch

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles request starts per host.
type Limiter interface {
	// Wait blocks until a request to host may start. Returns the
	// context's error if it is canceled first.
	Wait(ctx context.Context, host string) error
}

// Ensure DomainLimiter implements Limiter at compile time.
var _ Limiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests independently per host. Each host gets
// its own token bucket with a burst of 1, so downloads against one
// documentation host spread out evenly while other hosts proceed
// unaffected.
type DomainLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	rps     float64
}

// NewDomainLimiter returns a DomainLimiter allowing rps requests per
// second to each host.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		buckets: make(map[string]*rate.Limiter),
		rps:     rps,
	}
}

// Wait blocks until the host's bucket permits another request,
// creating the bucket on first use.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	d.mu.Lock()
	bucket, ok := d.buckets[host]
	if !ok {
		bucket = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.buckets[host] = bucket
	}
	d.mu.Unlock()

	return bucket.Wait(ctx)
}
