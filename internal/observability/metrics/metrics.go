package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "profee_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	statementSaveTotal   *prometheus.CounterVec
	statementSaveLatency *prometheus.HistogramVec

	statementExportTotal   *prometheus.CounterVec
	statementExportLatency *prometheus.HistogramVec

	fuelProrationTotal   *prometheus.CounterVec
	fuelProrationLatency *prometheus.HistogramVec

	fuelExportTotal *prometheus.CounterVec

	validationFailures *prometheus.CounterVec

	historyPurgeTotal prometheus.Counter
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		statementSaveTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_save_total",
				Help: "Total statement save operations by result",
			},
			[]string{"result"},
		)
		statementSaveLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "statement_save_latency_seconds",
				Help:    "Statement save latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		statementExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_export_total",
				Help: "Total statement export operations by format and result",
			},
			[]string{"format", "result"},
		)
		statementExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "statement_export_latency_seconds",
				Help:    "Statement export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		fuelProrationTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "fuel_proration_total",
				Help: "Total fuel proration computations by result",
			},
			[]string{"result"},
		)
		fuelProrationLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "fuel_proration_latency_seconds",
				Help:    "Fuel proration latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		fuelExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "fuel_export_total",
				Help: "Total fuel-only export operations by format and result",
			},
			[]string{"format", "result"},
		)

		validationFailures = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_validation_failures_total",
				Help: "Total statement validation failures by field",
			},
			[]string{"field"},
		)

		historyPurgeTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "history_purge_total",
				Help: "Total statement history purges triggered by version migration",
			},
		)

		prometheus.MustRegister(
			statementSaveTotal,
			statementSaveLatency,
			statementExportTotal,
			statementExportLatency,
			fuelProrationTotal,
			fuelProrationLatency,
			fuelExportTotal,
			validationFailures,
			historyPurgeTotal,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveStatementSave records save latency and result.
func ObserveStatementSave(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if statementSaveTotal != nil {
		statementSaveTotal.WithLabelValues(result).Inc()
	}
	if statementSaveLatency != nil {
		statementSaveLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveStatementExport records export latency and result.
func ObserveStatementExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if statementExportTotal != nil {
		statementExportTotal.WithLabelValues(format, result).Inc()
	}
	if statementExportLatency != nil {
		statementExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// ObserveFuelProration records fuel computation latency and result.
func ObserveFuelProration(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if fuelProrationTotal != nil {
		fuelProrationTotal.WithLabelValues(result).Inc()
	}
	if fuelProrationLatency != nil {
		fuelProrationLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncFuelExport increments fuel-only export counter.
func IncFuelExport(format, result string) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if fuelExportTotal != nil {
		fuelExportTotal.WithLabelValues(format, result).Inc()
	}
}

// IncValidationFailure increments the per-field validation failure counter.
func IncValidationFailure(field string) {
	if field == "" {
		field = "unknown"
	}
	if validationFailures != nil {
		validationFailures.WithLabelValues(field).Inc()
	}
}

// IncHistoryPurge counts a version-migration history purge.
func IncHistoryPurge() {
	if historyPurgeTotal != nil {
		historyPurgeTotal.Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
