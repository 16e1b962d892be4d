package llm

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerClient wraps a Client with a circuit breaker so that pipeline
// stages stop waiting on a provider that is clearly down and fall back to
// their deterministic paths instead.
type BreakerClient struct {
	inner Client
	cb    *gobreaker.CircuitBreaker[string]
}

// WithBreaker wraps an existing client with circuit breaker protection.
func WithBreaker(inner Client, name string) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
	}

	return &BreakerClient{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[string](settings),
	}
}

// GenerateContent generates text content through the breaker
func (c *BreakerClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier, temperature float32) (string, error) {
	return c.cb.Execute(func() (string, error) {
		return c.inner.GenerateContent(ctx, prompt, tier, temperature)
	})
}

// GenerateJSON generates JSON content through the breaker
func (c *BreakerClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.cb.Execute(func() (string, error) {
		return c.inner.GenerateJSON(ctx, prompt, tier)
	})
}

// Close releases the underlying client's resources
func (c *BreakerClient) Close() error {
	return c.inner.Close()
}

// IsHealthy reports whether the breaker is in the closed state.
func (c *BreakerClient) IsHealthy() bool {
	return c.cb.State() == gobreaker.StateClosed
}
