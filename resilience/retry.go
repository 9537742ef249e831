package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig configures Retry.
type RetryConfig struct {
	// MaxAttempts is the number of attempts including the first.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts" validate:"gte=0"`
	// InitialBackoff is the delay before the second attempt.
	InitialBackoff time.Duration `yaml:"initial_backoff" mapstructure:"initial_backoff"`
	// MaxBackoff caps every delay, including server-provided ones.
	MaxBackoff time.Duration `yaml:"max_backoff" mapstructure:"max_backoff"`
	// BackoffFactor multiplies the delay after each attempt.
	BackoffFactor float64 `yaml:"backoff_factor" mapstructure:"backoff_factor"`
	// Jitter randomizes each computed delay by up to this fraction.
	Jitter float64 `yaml:"jitter" mapstructure:"jitter"`
	// RetryIf decides whether an error is worth another attempt.
	RetryIf func(error) bool `yaml:"-" mapstructure:"-"`
	// DelayHint returns a delay the failed attempt asked for, such as an
	// HTTP Retry-After header. It overrides the computed backoff.
	DelayHint func(error) (time.Duration, bool) `yaml:"-" mapstructure:"-"`
	// OnRetry is called before sleeping.
	OnRetry func(attempt int, err error, delay time.Duration) `yaml:"-" mapstructure:"-"`
}

// DefaultRetryConfig returns three attempts with 250ms exponential backoff.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 250 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		BackoffFactor:  2.0,
		Jitter:         0.1,
		RetryIf:        DefaultRetryIf,
	}
}

// DefaultRetryIf retries everything except context cancellation.
func DefaultRetryIf(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *RetryConfig) applyDefaults() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = 250 * time.Millisecond
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 10 * time.Second
	}
	if c.BackoffFactor < 1 {
		c.BackoffFactor = 2.0
	}
	if c.RetryIf == nil {
		c.RetryIf = DefaultRetryIf
	}
}

// Retry calls fn until it succeeds, returns an error RetryIf rejects, or
// the attempts run out. The result and error of the last attempt are
// returned together, so callers keep partial results such as an HTTP
// response that carried an error status.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) (T, error) {
	cfg.applyDefaults()

	var (
		result T
		err    error
	)
	for attempt := 1; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}

		result, err = fn()
		if err == nil || !cfg.RetryIf(err) || attempt >= cfg.MaxAttempts {
			return result, err
		}

		delay := cfg.backoff(attempt)
		if cfg.DelayHint != nil {
			if hint, ok := cfg.DelayHint(err); ok {
				delay = min(hint, cfg.MaxBackoff)
			}
		}
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return result, ctx.Err()
		case <-timer.C:
		}
	}
}

// backoff returns InitialBackoff * BackoffFactor^(attempt-1), jittered and
// capped at MaxBackoff.
func (c *RetryConfig) backoff(attempt int) time.Duration {
	d := float64(c.InitialBackoff) * math.Pow(c.BackoffFactor, float64(attempt-1))
	if c.Jitter > 0 {
		d += d * c.Jitter * (rand.Float64()*2 - 1)
	}
	if d > float64(c.MaxBackoff) {
		d = float64(c.MaxBackoff)
	}
	if d <= 0 {
		d = float64(c.InitialBackoff)
	}
	return time.Duration(d)
}
