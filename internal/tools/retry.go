package tools

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// retryPolicy bounds a retried operation: total attempts, initial delay, and
// delay cap. Both network tools share this shape with their own numbers.
type retryPolicy struct {
	MaxAttempts  uint64
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

var (
	searchRetry = retryPolicy{MaxAttempts: 3, InitialDelay: 2 * time.Second, MaxDelay: 10 * time.Second}
	fetchRetry  = retryPolicy{MaxAttempts: 2, InitialDelay: 1 * time.Second, MaxDelay: 5 * time.Second}
)

// withRetry runs op under the policy's exponential backoff and returns the
// last error once attempts are exhausted. Context cancellation stops the
// retries immediately.
func withRetry[T any](ctx context.Context, p retryPolicy, op func() (T, error)) (T, error) {
	if p.MaxAttempts == 0 {
		p.MaxAttempts = 1
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialDelay
	b.MaxInterval = p.MaxDelay
	b.MaxElapsedTime = 0
	return backoff.RetryWithData(op, backoff.WithContext(backoff.WithMaxRetries(b, p.MaxAttempts-1), ctx))
}
