package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/products-api/internal/core/domain"
	"github.com/99minutos/products-api/internal/core/ports"
	"github.com/99minutos/products-api/internal/pkg/metrics"
)

const (
	DefaultPriceFloor      = 10.0
	DefaultValidationDelay = time.Second
)

// PriceGate stands in for a remote pricing check: it approves candidates whose
// price reaches the floor once the simulated round trip has elapsed.
type PriceGate struct {
	floor float64
	delay time.Duration
	audit ports.AuditRecorder
	log   zerolog.Logger
}

// NewPriceGate returns a PriceGate. A floor below DefaultPriceFloor is raised
// to it and a negative delay becomes zero. audit may be nil.
func NewPriceGate(floor float64, delay time.Duration, audit ports.AuditRecorder, log zerolog.Logger) *PriceGate {
	if floor < DefaultPriceFloor {
		floor = DefaultPriceFloor
	}
	if delay < 0 {
		delay = 0
	}
	return &PriceGate{floor: floor, delay: delay, audit: audit, log: log}
}

// Validate starts the check on its own goroutine and returns immediately. The
// channel is buffered so the goroutine never blocks on an abandoned caller.
func (g *PriceGate) Validate(ctx context.Context, owner string, c domain.ProductCandidate) <-chan bool {
	out := make(chan bool, 1)

	go func() {
		start := time.Now()
		timer := time.NewTimer(g.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		approved := c.Price >= g.floor
		decision := domain.ValidationAudit{
			Owner:     owner,
			Name:      c.Name,
			Price:     c.Price,
			Approved:  approved,
			DecidedAt: time.Now().UTC(),
		}

		g.log.Info().
			Str("name", c.Name).
			Float64("price", c.Price).
			Str("validation_result", decision.Verdict()).
			Msg("product validation")

		metrics.ProductValidationsTotal.WithLabelValues(decision.Verdict()).Inc()
		metrics.ProductValidationDuration.Observe(time.Since(start).Seconds())
		if g.audit != nil {
			g.audit.Record(decision)
		}

		out <- approved
	}()

	return out
}
