package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xela07ax/inventory-console/internal/infra"
)

// errServerFailure помечает 5xx для предохранителя. Наружу не выходит:
// ответ все равно отдается вызывающему как APIError.
var errServerFailure = errors.New("server failure")

func newLimiter(cfg infra.GatewayConfig) *rate.Limiter {
	if cfg.RateLimit <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
}

// newBreaker открывается после серии сбоев транспорта или 5xx.
// 4xx, включая 401, сбоем не считаются: это ответ API, а не его недоступность.
func newBreaker(cfg infra.GatewayConfig, metrics *Metrics, logger *zap.Logger) *gobreaker.CircuitBreaker {
	interval := cfg.CBInterval
	timeout := cfg.CBTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "inventory-api",
		MaxRequests: cfg.CBMaxRequests,
		Interval:    interval,
		Timeout:     timeout, // Время, через которое CB попробует "закрыться"
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if cfg.CBConsecutiveFailures == 0 {
				return false
			}
			return counts.ConsecutiveFailures >= cfg.CBConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			// Отмена со стороны вызывающего не говорит о здоровье API
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			metrics.CircuitBreakerState.Set(breakerStateValue(to))
		},
	})
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}
