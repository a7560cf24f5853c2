package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreakerCountsConsecutiveFailuresOnly(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
	})

	cb.record("/api/tasks", http.StatusInternalServerError)
	cb.record("/api/tasks", http.StatusInternalServerError)
	cb.record("/api/tasks", http.StatusOK)
	cb.record("/api/tasks", http.StatusInternalServerError)
	cb.record("/api/tasks", http.StatusInternalServerError)

	// The success in between restarted the failure run, so the circuit stays
	// closed until three failures land back to back.
	assert.True(t, cb.allow())

	cb.record("/api/tasks", http.StatusBadGateway)
	assert.False(t, cb.allow())
}

func TestCircuitBreakerRecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Millisecond,
	})

	cb.record("/api/tasks", http.StatusInternalServerError)
	assert.False(t, cb.allow())

	time.Sleep(5 * time.Millisecond)
	assert.True(t, cb.allow())

	cb.record("/api/tasks", http.StatusOK)
	assert.True(t, cb.allow())
}
