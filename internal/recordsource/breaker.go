package recordsource

import (
	"context"
	"errors"
	"log/slog"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/rpggio/showcase/internal/config"
	"github.com/rpggio/showcase/internal/discovery"
	"github.com/rpggio/showcase/internal/domain/project"
	"github.com/rpggio/showcase/internal/metrics"
)

// Breaker wraps a discovery.Source with a circuit breaker so a failing store
// fails fast instead of stalling every refresh.
type Breaker struct {
	src    discovery.Source
	cb     *gobreaker.CircuitBreaker[[]project.Project]
	name   string
	logger *slog.Logger
}

// NewBreaker wraps src. The circuit opens once at least cfg.MinRequests
// fetches in the current interval failed at cfg.FailureRatio or more.
func NewBreaker(name string, src discovery.Source, cfg config.BreakerConfig, logger *slog.Logger) *Breaker {
	b := &Breaker{src: src, name: name, logger: logger}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	b.cb = gobreaker.NewCircuitBreaker[[]project.Project](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			trip := ratio >= cfg.FailureRatio
			if trip && logger != nil {
				logger.Warn("opening circuit", "breaker", name, "failures", counts.TotalFailures, "requests", counts.Requests)
			}
			return trip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Info("circuit state changed", "breaker", name, "from", stateToString(from), "to", stateToString(to))
			}
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
		// A caller giving up is not a store failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return b
}

// FetchProjects fetches through the circuit breaker.
func (b *Breaker) FetchProjects(ctx context.Context) ([]project.Project, error) {
	projects, err := b.cb.Execute(func() ([]project.Project, error) {
		return b.src.FetchProjects(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		}
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return projects, nil
}

// State returns the current circuit state name.
func (b *Breaker) State() string {
	return stateToString(b.cb.State())
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
