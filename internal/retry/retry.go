// Package retry runs an operation with bounded exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy describes how many times an operation is retried and how long to
// wait between attempts. The delay before retry n (1-based) is
// BaseDelay * Multiplier^(n-1). No jitter is applied.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Multiplier float64

	// Timer overrides the timer used to wait between attempts. Nil uses a
	// real timer.
	Timer backoff.Timer
}

// DefaultPolicy retries three times after 100ms, 200ms and 400ms.
var DefaultPolicy = Policy{
	MaxRetries: 3,
	BaseDelay:  100 * time.Millisecond,
	Multiplier: 2,
}

// Notify is called before each wait with the error that triggered the retry,
// the 1-based retry number and the delay about to be slept.
type Notify func(err error, retry int, delay time.Duration)

// Permanent wraps err so that Do returns it immediately without retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do calls fn until it returns nil, a Permanent error, the retries are
// exhausted, or ctx is done. It returns the last error from fn, or ctx.Err()
// when the context ended first.
func (p Policy) Do(ctx context.Context, fn func() error, notify Notify) error {
	var n int
	var onRetry backoff.Notify
	if notify != nil {
		onRetry = func(err error, d time.Duration) {
			n++
			notify(err, n, d)
		}
	}
	return backoff.RetryNotifyWithTimer(fn, p.backOff(ctx), onRetry, p.Timer)
}

// delays returns the sequence of waits the policy would perform.
func (p Policy) delays() []time.Duration {
	b := p.exponential()
	out := make([]time.Duration, 0, p.MaxRetries)
	for i := 0; i < p.MaxRetries; i++ {
		out = append(out, b.NextBackOff())
	}
	return out
}

func (p Policy) backOff(ctx context.Context) backoff.BackOffContext {
	var b backoff.BackOff = p.exponential()
	b = backoff.WithMaxRetries(b, uint64(max(p.MaxRetries, 0)))
	return backoff.WithContext(b, ctx)
}

func (p Policy) exponential() *backoff.ExponentialBackOff {
	mult := p.Multiplier
	if mult < 1 {
		mult = 1
	}
	b := &backoff.ExponentialBackOff{
		InitialInterval:     p.BaseDelay,
		RandomizationFactor: 0,
		Multiplier:          mult,
		MaxInterval:         time.Duration(1<<63 - 1),
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	b.Reset()
	return b
}
