package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SaleMetrics records outcomes of the pricing mutation operations.
type SaleMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	prices   *prometheus.CounterVec
}

// NewSaleMetrics registers the sale metrics on the provided registerer.
func NewSaleMetrics(reg prometheus.Registerer) *SaleMetrics {
	if reg == nil {
		return &SaleMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sale_operation_duration_seconds",
		Help:    "Duration of sale apply/reset/upsert operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sale_operation_success",
		Help: "Successful sale operations.",
	}, []string{"operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sale_operation_failure",
		Help: "Failed sale operations.",
	}, []string{"operation"})
	prices := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sale_prices_written",
		Help: "Prices mutated by sale operations.",
	}, []string{"operation"})
	reg.MustRegister(duration, success, failure, prices)
	return &SaleMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		prices:   prices,
	}
}

// ObserveDuration records the duration for the named operation.
func (m *SaleMetrics) ObserveDuration(operation string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (m *SaleMetrics) IncSuccess(operation string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (m *SaleMetrics) IncFailure(operation string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(operation)).Inc()
}

// AddPricesWritten counts mutated price rows for the named operation.
func (m *SaleMetrics) AddPricesWritten(operation string, count int) {
	if m == nil || m.prices == nil || count <= 0 {
		return
	}
	m.prices.WithLabelValues(normalizeLabel(operation)).Add(float64(count))
}

func normalizeLabel(operation string) string {
	if operation == "" {
		return "unknown"
	}
	return operation
}
