package utils

import (
	"context"
	"math/rand"
	"time"
)

type BackoffConfig struct {
	MinDelay time.Duration
	MaxDelay time.Duration
	Expo     float64
	Jitter   float64 // fraction of the delay added at random, 0 disables
}

var DefaultBackoffConfig = BackoffConfig{
	MinDelay: 100 * time.Millisecond,
	MaxDelay: 10 * time.Second,
	Expo:     2.0,
	Jitter:   0.1,
}

// ExpBackoff yields exponentially growing delays capped at MaxDelay.
// It is not safe for concurrent use.
type ExpBackoff struct {
	config BackoffConfig
	next   time.Duration
}

func NewExpBackoff() *ExpBackoff {
	return NewExpBackoffWithConfig(DefaultBackoffConfig)
}

func NewExpBackoffWithConfig(config BackoffConfig) *ExpBackoff {
	if config.Expo < 1 {
		config.Expo = 1
	}
	return &ExpBackoff{config: config, next: config.MinDelay}
}

func (e *ExpBackoff) Reset() {
	e.next = e.config.MinDelay
}

// Next returns the delay for the current attempt and advances the backoff.
func (e *ExpBackoff) Next() time.Duration {
	delay := e.next
	grown := time.Duration(float64(e.next) * e.config.Expo)
	if grown > e.config.MaxDelay {
		grown = e.config.MaxDelay
	}
	e.next = grown

	if e.config.Jitter > 0 {
		delay += time.Duration(rand.Float64() * e.config.Jitter * float64(delay))
	}
	return delay
}

// Retry calls fn up to attempts times, sleeping between failures. It stops
// early when fn succeeds, when retryable reports false, or when ctx is done.
func Retry(ctx context.Context, attempts int, b *ExpBackoff, retryable func(error) bool, fn func() error) error {
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		timer := time.NewTimer(b.Next())
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
