package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrRateLimited is returned by TryAcquire when no token is available.
var ErrRateLimited = errors.New("resilience: rate limit exceeded")

// RateLimiterConfig configures a RateLimiter as Limit requests per Per.
type RateLimiterConfig struct {
	// Name identifies the limiter in logs.
	Name string `yaml:"name" mapstructure:"name"`
	// Limit is the number of requests allowed in each Per window.
	Limit int `yaml:"limit" mapstructure:"limit" validate:"gte=0"`
	// Per is the window length. Defaults to one minute.
	Per time.Duration `yaml:"per" mapstructure:"per"`
	// Burst is the bucket size. Defaults to Limit.
	Burst int `yaml:"burst" mapstructure:"burst" validate:"gte=0"`
	// OnLimit is called whenever a caller has to wait for a token.
	OnLimit func(name string, wait time.Duration) `yaml:"-" mapstructure:"-"`
}

// DefaultRateLimiterConfig matches the default Alpaca quota of 200
// requests per minute.
func DefaultRateLimiterConfig(name string) RateLimiterConfig {
	return RateLimiterConfig{
		Name:  name,
		Limit: 200,
		Per:   time.Minute,
	}
}

// RateLimiter is a token bucket. It is safe for concurrent use.
type RateLimiter struct {
	config RateLimiterConfig
	rate   float64 // tokens per second

	mu     sync.Mutex
	tokens float64
	last   time.Time
	now    func() time.Time
}

// NewRateLimiter creates a limiter with a full bucket.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.Limit <= 0 {
		config.Limit = 200
	}
	if config.Per <= 0 {
		config.Per = time.Minute
	}
	if config.Burst <= 0 {
		config.Burst = config.Limit
	}
	return &RateLimiter{
		config: config,
		rate:   float64(config.Limit) / config.Per.Seconds(),
		tokens: float64(config.Burst),
		last:   time.Now(),
		now:    time.Now,
	}
}

// TryAcquire takes a token without blocking, or returns ErrRateLimited.
func (rl *RateLimiter) TryAcquire() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()
	if rl.tokens < 1 {
		return ErrRateLimited
	}
	rl.tokens--
	return nil
}

// Wait takes a token, blocking until one is available or ctx is done.
// A caller that gives up keeps its reservation; the bucket recovers at the
// configured rate.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	wait := rl.reserve()
	if wait <= 0 {
		return nil
	}
	if rl.config.OnLimit != nil {
		rl.config.OnLimit(rl.config.Name, wait)
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Tokens returns the number of tokens currently available. It is negative
// while callers are queued behind reservations.
func (rl *RateLimiter) Tokens() float64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refill()
	return rl.tokens
}

// Rate returns the refill rate in tokens per second.
func (rl *RateLimiter) Rate() float64 { return rl.rate }

// reserve takes a token, possibly driving the bucket negative, and returns
// how long the caller must wait before using it.
func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()
	rl.tokens--
	if rl.tokens >= 0 {
		return 0
	}
	return time.Duration(-rl.tokens / rl.rate * float64(time.Second))
}

func (rl *RateLimiter) refill() {
	now := rl.now()
	rl.tokens += now.Sub(rl.last).Seconds() * rl.rate
	rl.last = now
	if burst := float64(rl.config.Burst); rl.tokens > burst {
		rl.tokens = burst
	}
}
