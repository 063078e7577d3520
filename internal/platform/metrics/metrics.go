package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cryptodesk"

var (
	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_requests_total",
		Help:      "Price provider calls by operation and result.",
	}, []string{"op", "result"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Price and markets cache lookups by cache and outcome (fresh, refreshed, stale, fallback).",
	}, []string{"cache", "outcome"})

	SnapshotSaveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_snapshot_save_failures_total",
		Help:      "Failed attempts to persist the price snapshot.",
	})

	DepositsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deposits_confirmed_total",
		Help:      "Pending deposits confirmed and credited.",
	})

	DepositErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deposit_confirm_errors_total",
		Help:      "Errors while confirming pending deposits.",
	})

	DepositsPending = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "deposits_pending",
		Help:      "Pending deposits seen by the last worker pass.",
	})

	TickerSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ticker_subscribers",
		Help:      "Currently connected ticker subscribers.",
	})

	TickerEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticker_ticks_total",
		Help:      "Ticker polls by result (published, skipped).",
	}, []string{"result"})

	TasksPanicked = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "background_task_panics_total",
		Help:      "Recovered panics in supervised background tasks.",
	}, []string{"task"})
)
