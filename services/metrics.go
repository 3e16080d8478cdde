package services

import (
	"time"

	"aisolutions-backend/models"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	records  *prometheus.CounterVec
	refunds  prometheus.Counter
	duration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aisolutions_records_generated_total",
			Help: "Synthesized sales records appended to the store, by product status.",
		}, []string{"status"}),
		refunds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aisolutions_refund_amount_total",
			Help: "Sum of refund amounts of generated records.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "aisolutions_batch_duration_seconds",
			Help:    "Time spent generating and storing one batch.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.records, m.refunds, m.duration)
	return m
}

func (m *Metrics) Observe(records []models.Record, took time.Duration) {
	if m == nil {
		return
	}
	for _, r := range records {
		m.records.WithLabelValues(string(r.ProductStatus)).Inc()
		m.refunds.Add(r.RefundAmount.InexactFloat64())
	}
	m.duration.Observe(took.Seconds())
}
