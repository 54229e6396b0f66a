package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Status label values
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

var (
	// TransactionsTotal counts ledger transactions by operation and outcome kind
	TransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agreement_transactions_total",
			Help: "Total number of agreement transactions submitted",
		},
		[]string{"operation", "status"},
	)

	// FinalityWait tracks how long transactions take to become final
	FinalityWait = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agreement_finality_wait_seconds",
			Help:    "Time spent waiting for transaction finality in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"operation"},
	)

	// GasUsed tracks gas used per operation
	GasUsed = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agreement_gas_used",
			Help:    "Gas used by agreement transactions",
			Buckets: []float64{21000, 50000, 100000, 200000, 300000, 500000, 1000000, 3000000},
		},
		[]string{"operation"},
	)

	// QueriesTotal counts read-only ledger queries
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agreement_queries_total",
			Help: "Total number of read-only agreement queries",
		},
		[]string{"operation", "status"},
	)

	// DeployedDerivatives tracks the size of the in-session derivative roster
	DeployedDerivatives = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "agreement_deployed_derivatives",
			Help: "Number of derivative contracts deployed in this session",
		},
	)
)
