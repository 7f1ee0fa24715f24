// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Write outcomes recorded by StoreWritesTotal.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailure  = "failure"
	OutcomeOpen     = "circuit_open"
)

var (
	// StoreWritesTotal counts write batches sent to the document store by breaker name and outcome.
	StoreWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_write_batches_total",
			Help: "Total number of write batches sent to the document store",
		},
		[]string{"store", "outcome"},
	)

	// StoreOperationsTotal counts individual committed operations by record kind and op.
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Total number of record operations committed to the document store",
		},
		[]string{"kind", "op"},
	)

	// StoreQueriesTotal counts snapshot queries by breaker name and outcome.
	StoreQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_queries_total",
			Help: "Total number of snapshot queries sent to the document store",
		},
		[]string{"store", "outcome"},
	)

	// CircuitBreakerState is 0 when closed, 1 when half-open and 2 when open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "store_circuit_breaker_state",
			Help: "Document store circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"store"},
	)

	// CircuitBreakerTransitions counts breaker state changes.
	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_circuit_breaker_transitions_total",
			Help: "Total number of document store circuit breaker state transitions",
		},
		[]string{"store", "from", "to"},
	)

	// InterlockSharedTotal counts actions that joined an identical in-flight action
	// instead of issuing their own write.
	InterlockSharedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interlock_shared_total",
			Help: "Total number of duplicate in-flight actions collapsed into one write",
		},
		[]string{"action"},
	)
)
