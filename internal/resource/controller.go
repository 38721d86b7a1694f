package resource

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

var (
	// ErrRateLimited is returned when the request rate exceeds the configured limit.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrOverloaded is returned when too many requests are already in flight.
	ErrOverloaded = errors.New("too many requests in flight")
)

// Config holds admission limits.
type Config struct {
	// RequestsPerSecond is the sustained request rate.
	// If 0, unlimited.
	RequestsPerSecond float64

	// Burst is the number of requests admitted at once above the sustained rate.
	// If 0, defaults to RequestsPerSecond rounded up, at least 1.
	Burst int

	// MaxInFlight is the maximum number of requests served concurrently.
	// If 0, unlimited.
	MaxInFlight int64
}

// Controller admits requests against a rate limit and a concurrency cap.
// A nil *Controller admits everything.
type Controller struct {
	cfg Config

	// Rate
	limiter *rate.Limiter // nil if unlimited

	// Concurrency
	inflightSem *semaphore.Weighted // nil if unlimited
	inflight    atomic.Int64

	rejected atomic.Int64
}

// NewController creates a new admission controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.RequestsPerSecond > 0 {
		if cfg.Burst <= 0 {
			c.cfg.Burst = max(1, int(cfg.RequestsPerSecond+0.999))
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), c.cfg.Burst)
	}

	if cfg.MaxInFlight > 0 {
		c.inflightSem = semaphore.NewWeighted(cfg.MaxInFlight)
	}

	return c
}

// Admit reserves capacity for one request without blocking.
// On success the returned release func must be called exactly once when the
// request completes.
func (c *Controller) Admit() (release func(), err error) {
	return c.admitAt(time.Now())
}

func (c *Controller) admitAt(now time.Time) (func(), error) {
	if c == nil {
		return func() {}, nil
	}

	if c.limiter != nil && !c.limiter.AllowN(now, 1) {
		c.rejected.Add(1)
		return nil, ErrRateLimited
	}

	if c.inflightSem != nil && !c.inflightSem.TryAcquire(1) {
		c.rejected.Add(1)
		return nil, ErrOverloaded
	}

	return c.hold(), nil
}

// Acquire waits until the request may proceed or ctx is done.
func (c *Controller) Acquire(ctx context.Context) (release func(), err error) {
	if c == nil {
		return func() {}, nil
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.rejected.Add(1)
			return nil, errors.Join(ErrRateLimited, err)
		}
	}

	if c.inflightSem != nil {
		if err := c.inflightSem.Acquire(ctx, 1); err != nil {
			c.rejected.Add(1)
			return nil, errors.Join(ErrOverloaded, err)
		}
	}

	return c.hold(), nil
}

func (c *Controller) hold() func() {
	c.inflight.Add(1)

	var once atomic.Bool
	return func() {
		if !once.CompareAndSwap(false, true) {
			return
		}
		c.inflight.Add(-1)
		if c.inflightSem != nil {
			c.inflightSem.Release(1)
		}
	}
}

// InFlight returns the number of admitted requests that have not been released.
func (c *Controller) InFlight() int64 {
	if c == nil {
		return 0
	}
	return c.inflight.Load()
}

// Rejected returns the number of requests turned away so far.
func (c *Controller) Rejected() int64 {
	if c == nil {
		return 0
	}
	return c.rejected.Load()
}

// Config returns the effective configuration.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}
