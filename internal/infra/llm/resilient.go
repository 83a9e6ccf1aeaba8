// Package llm — ResilientClient: bounded retry around a Provider.
//
// Generation failures never escape this boundary. Callers always receive a
// displayable string: the model's reply on success, or one of two fixed
// degraded-service sentences on failure. The two sentences are distinguishable
// in logs (upstream error vs upstream saturated) but equally inert for the
// end user — raw upstream error text is never returned.
package llm

import (
	"context"
	"math/rand"
	"time"

	"github.com/edugenhq/edugen-server/internal/observability"
)

// Degraded-service replies. Neither contains the word "yes": the document
// classifier treats any reply without it as "not a résumé", so a degraded
// classification call fails open.
const (
	// FallbackErrorReply is returned when the transport fails with anything
	// other than a rate limit, or when the request context is cancelled.
	FallbackErrorReply = "Sorry, an error occurred while connecting to the AI service."

	// FallbackBusyReply is returned when every attempt was rate limited.
	FallbackBusyReply = "The service is currently busy. Please try again in a moment."
)

// RetryPolicy bounds the retry loop. Configuration, not per-request state.
type RetryPolicy struct {
	MaxAttempts int           // total attempts, including the first
	BaseDelay   time.Duration // delay before the second attempt; doubles each retry
	JitterMax   time.Duration // upper bound of the random component added to each delay
}

// DefaultRetryPolicy returns the production retry policy: 3 attempts,
// 1s base delay, up to 1s of full jitter.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		JitterMax:   time.Second,
	}
}

// ResilientClient wraps a Provider with bounded exponential-backoff retry.
//
// Only rate-limit failures are retried: backoff exists to ride out a shared
// upstream quota, and jitter keeps concurrent callers from retrying in
// lockstep. Any other failure is final immediately.
type ResilientClient struct {
	provider Provider
	policy   RetryPolicy

	// seams for tests; defaults sleep for real and draw real jitter.
	sleep  func(ctx context.Context, d time.Duration) error
	jitter func(max time.Duration) time.Duration
}

// NewResilientClient creates a ResilientClient around provider.
func NewResilientClient(provider Provider, policy RetryPolicy) *ResilientClient {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &ResilientClient{
		provider: provider,
		policy:   policy,
		sleep:    sleepContext,
		jitter:   randomJitter,
	}
}

// Generate sends prompt through the provider, retrying rate-limited attempts
// with exponential backoff and full jitter. It never returns an error:
// unrecoverable failures yield FallbackErrorReply, exhausted retries yield
// FallbackBusyReply.
//
// Backoff sleeps honour ctx, so a cancelled request abandons the retry
// sequence instead of blocking its handler.
func (c *ResilientClient) Generate(ctx context.Context, prompt string) string {
	log := observability.FromContext(ctx)

	for attempt := 0; attempt < c.policy.MaxAttempts; attempt++ {
		resp, err := c.provider.GenerateContent(ctx, GenerateRequest{Prompt: prompt})
		if err == nil {
			return resp.Text
		}

		if !IsRateLimit(err) {
			log.Error("model call failed", "attempt", attempt+1, "error", err)
			return FallbackErrorReply
		}

		if attempt == c.policy.MaxAttempts-1 {
			break
		}

		delay := c.policy.BaseDelay<<attempt + c.jitter(c.policy.JitterMax)
		log.Warn("model call rate limited, backing off",
			"attempt", attempt+1, "delay", delay.String())
		if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
			log.Warn("retry abandoned, context done", "error", sleepErr)
			return FallbackErrorReply
		}
	}

	log.Error("model call rate limited on every attempt", "attempts", c.policy.MaxAttempts)
	return FallbackBusyReply
}

// sleepContext blocks for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// randomJitter draws a uniform random duration in [0, max).
func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(max))) //nolint:gosec // jitter, not crypto
}
