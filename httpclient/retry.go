package httpclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/andyle182810/boxsdk/boxresponse"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

const (
	defaultMaxRetries    = 3
	defaultRetryDelay    = 500 * time.Millisecond
	defaultMaxRetryDelay = 30 * time.Second
)

type RetryConfig struct {
	MaxRetries   uint64
	InitialDelay time.Duration
	// MaxDelay also caps a server-provided Retry-After.
	MaxDelay time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   defaultMaxRetries,
		InitialDelay: defaultRetryDelay,
		MaxDelay:     defaultMaxRetryDelay,
	}
}

// IsRetryableError reports whether a failed exchange is worth sending again:
// throttling, 5xx responses and transport failures.
func IsRetryableError(err error) bool {
	if _, ok := boxresponse.AsRateLimitError(err); ok {
		return true
	}

	if apiErr, ok := boxresponse.AsAPIError(err); ok {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}

	return errors.Is(err, ErrRequestFailed)
}

type RetryableFunc func(ctx context.Context) error

// WithRetryPolicy runs fn until it succeeds, fails permanently or the retry
// budget is spent. The last error is returned as is.
func WithRetryPolicy(ctx context.Context, cfg RetryConfig, fn RetryableFunc) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = cfg.InitialDelay
	exp.MaxInterval = cfg.MaxDelay
	exp.MaxElapsedTime = 0

	hinted := &retryAfterBackOff{BackOff: exp, maxDelay: cfg.MaxDelay, hint: 0}
	policy := backoff.WithContext(backoff.WithMaxRetries(hinted, cfg.MaxRetries), ctx)

	operation := func() error {
		err := fn(ctx)
		if err == nil {
			return nil
		}

		if !IsRetryableError(err) {
			return backoff.Permanent(err)
		}

		if rateErr, ok := boxresponse.AsRateLimitError(err); ok {
			hinted.hint = rateErr.RetryAfterDuration()
		}

		return err
	}

	return backoff.RetryNotify(operation, policy, func(err error, delay time.Duration) {
		log.Warn().
			Err(err).
			Dur("delay", delay).
			Msg("Request failed, retrying.")
	})
}

func (c *Client) withRetry(ctx context.Context, fn RetryableFunc) error {
	if c.retry == nil {
		return fn(ctx)
	}

	return WithRetryPolicy(ctx, *c.retry, fn)
}

// retryAfterBackOff prefers a Retry-After hint over the exponential schedule.
type retryAfterBackOff struct {
	backoff.BackOff

	maxDelay time.Duration
	hint     time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop || b.hint <= 0 {
		return next
	}

	next = b.hint
	b.hint = 0

	if b.maxDelay > 0 && next > b.maxDelay {
		next = b.maxDelay
	}

	return next
}
