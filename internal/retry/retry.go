package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/goran-ethernal/CoinFeed/pkg/config"
)

// DefaultJitter is the jitter fraction applied to RPC backoffs (±25%).
const DefaultJitter = 0.25

// Policy describes an exponential backoff retry policy.
type Policy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
	// Jitter is the fraction of the backoff randomly added or removed. Zero disables jitter.
	Jitter float64
}

// FromConfig builds a Policy from a RetryConfig. A nil config yields a single attempt policy.
func FromConfig(cfg *config.RetryConfig, jitter float64) Policy {
	if cfg == nil {
		return Policy{MaxAttempts: 1}
	}
	return Policy{
		MaxAttempts:    cfg.MaxAttempts,
		InitialBackoff: cfg.InitialBackoff.Duration,
		MaxBackoff:     cfg.MaxBackoff.Duration,
		Multiplier:     cfg.BackoffMultiplier,
		Jitter:         jitter,
	}
}

// Classifier decides whether an error should trigger another attempt.
type Classifier func(err error) bool

// Always retries every error except context cancellation.
func Always(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}

// Transient checks if an error is a transient network or provider error.
func Transient(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Network errors
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Connection errors
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Timeout errors
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	// Rate limiting
	if strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "rate limit") {
		return true
	}

	// Temporary server errors
	if strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "504") ||
		strings.Contains(errStr, "bad gateway") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "gateway timeout") {
		return true
	}

	if strings.Contains(errStr, "connection pool") ||
		strings.Contains(errStr, "no available connection") {
		return true
	}

	return false
}

// Backoff computes the wait before the given attempt (1-based).
// The first attempt never waits; attempt n waits InitialBackoff*Multiplier^(n-2), capped at MaxBackoff.
func Backoff(attempt int, p Policy) time.Duration {
	if attempt <= 1 {
		return 0
	}

	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}

	backoff := float64(p.InitialBackoff) * math.Pow(multiplier, float64(attempt-2))

	if p.MaxBackoff > 0 && backoff > float64(p.MaxBackoff) {
		backoff = float64(p.MaxBackoff)
	}

	if p.Jitter > 0 {
		jitterRange := backoff * p.Jitter
		backoff += (rand.Float64() * 2 * jitterRange) - jitterRange //nolint:gosec
	}

	if backoff < 0 {
		backoff = 0
	}

	return time.Duration(backoff)
}

// Do executes fn until it succeeds, the classifier rejects the error, attempts run out
// or the context is done. The returned error wraps the last error from fn.
func Do(ctx context.Context, p Policy, operation string, retryable Classifier, fn func(attempt int) error) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if retryable == nil {
		retryable = Transient
	}

	var lastErr error
	startTime := time.Now()

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if wait := Backoff(attempt, p); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("context cancelled during backoff (attempt %d/%d): %w",
					attempt, p.MaxAttempts, errors.Join(ctx.Err(), lastErr))
			}
			retriesInc(operation)
		}

		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context cancelled before attempt %d: %w", attempt, err)
		}

		err := fn(attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(err) {
			return fmt.Errorf("non-retryable error on attempt %d/%d: %w", attempt, p.MaxAttempts, err)
		}
	}

	if p.MaxAttempts == 1 {
		return lastErr
	}

	return fmt.Errorf("all %d attempts failed after %v (last error: %w)",
		p.MaxAttempts, time.Since(startTime), lastErr)
}
