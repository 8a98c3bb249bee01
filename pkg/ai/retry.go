// pkg/ai/retry.go

package ai

import (
	"context"
	"time"
)

// withRetry runs call up to attempts times. After each failure except the
// last it sleeps baseDelay * 2^i (pure exponential, no jitter) and tries
// again; after the last it propagates that error. Context cancellation cuts
// the wait short and stops retrying.
func withRetry(ctx context.Context, attempts int, baseDelay time.Duration, sleep func(time.Duration), call func() ([]byte, error)) ([]byte, error) {
	if attempts < 1 {
		attempts = 1
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	var lastErr error
	delay := baseDelay
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := call()
		if err == nil {
			return out, nil
		}
		lastErr = err
		if i < attempts-1 {
			sleep(delay)
			delay *= 2
		}
	}
	return nil, lastErr
}
