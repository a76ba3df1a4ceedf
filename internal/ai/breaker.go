package ai

import (
	"context"

	"dteai/internal/config"
	"dteai/pkg/circuitbreaker"
	"dteai/pkg/errors"
)

type breakerGenerator struct {
	inner Generator
	cb    *circuitbreaker.Wrapper
}

// WithBreaker guards a Generator with a circuit breaker. A tripped breaker
// surfaces as a generation error, which the orchestrators already treat as
// the fallback/degraded path.
func WithBreaker(inner Generator, cfg config.CircuitBreakerConfig) Generator {
	cbCfg := circuitbreaker.DefaultConfig("ollama")
	if cfg.MaxRequests > 0 {
		cbCfg.MaxRequests = cfg.MaxRequests
	}
	if cfg.Interval > 0 {
		cbCfg.Interval = cfg.Interval
	}
	if cfg.Timeout > 0 {
		cbCfg.Timeout = cfg.Timeout
	}

	return &breakerGenerator{
		inner: inner,
		cb:    circuitbreaker.NewWrapper(cbCfg),
	}
}

func (g *breakerGenerator) Generate(ctx context.Context, prompt string) (*Generation, error) {
	result, err := g.cb.ExecuteWithContext(ctx, func() (interface{}, error) {
		return g.inner.Generate(ctx, prompt)
	})

	g.cb.RecordRequest(err == nil)

	if err != nil {
		if errors.IsGeneration(err) {
			return nil, err
		}
		return nil, errors.Wrap(err, errors.ErrGeneration)
	}

	return result.(*Generation), nil
}
