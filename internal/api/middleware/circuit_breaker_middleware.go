package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/cobraflex/printercare/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CircuitState represents the state of a circuit breaker
type CircuitState int

const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

// CircuitBreakerConfig holds the thresholds governing state transitions.
type CircuitBreakerConfig struct {
	FailureThreshold int           // consecutive 5xx responses before the circuit opens
	SuccessThreshold int           // successes in half-open state before the circuit closes
	Timeout          time.Duration // how long an open circuit rejects before probing again
}

// DefaultCircuitBreakerConfig returns the configuration used on write routes
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
	}
}

// CircuitBreaker sheds load from a route once downstream failures pile up.
type CircuitBreaker struct {
	config CircuitBreakerConfig
	log    *logger.Logger

	mu        sync.Mutex
	state     CircuitState
	failures  int
	successes int
	openedAt  time.Time
}

// NewCircuitBreaker creates a new circuit breaker
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
		log:    logger.NewLogger(),
	}
}

// allow reports whether the request may pass through in the current state.
func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if time.Since(cb.openedAt) <= cb.config.Timeout {
			return false
		}
		// Timeout elapsed, let a probe request through.
		cb.state = StateHalfOpen
		cb.failures = 0
		cb.successes = 0
	}
	return true
}

// record folds the response status into the breaker state.
func (cb *CircuitBreaker) record(path string, status int) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if status >= http.StatusInternalServerError {
		cb.failures++
		if cb.state != StateOpen && cb.failures >= cb.config.FailureThreshold {
			cb.state = StateOpen
			cb.openedAt = time.Now()
			cb.log.Error("Circuit breaker opened",
				zap.String("path", path),
				zap.Int("failures", cb.failures))
		}
		return
	}

	cb.successes++
	if cb.state == StateClosed {
		// Failures only count when consecutive
		cb.failures = 0
	}
	if cb.state == StateHalfOpen && cb.successes >= cb.config.SuccessThreshold {
		cb.state = StateClosed
		cb.failures = 0
		cb.successes = 0
		cb.log.Info("Circuit breaker closed", zap.String("path", path))
	}
}

// CircuitBreakerMiddleware rejects requests with 503 while the circuit is open.
func (cb *CircuitBreaker) CircuitBreakerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cb.allow() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "service temporarily unavailable",
			})
			c.Abort()
			return
		}

		c.Next()

		cb.record(c.Request.URL.Path, c.Writer.Status())
	}
}
