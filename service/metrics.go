package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Metrics is safe to use as a nil pointer; every method becomes a no-op.
type Metrics struct {
	salesCommitted  prometheus.Counter
	revenue         prometheus.Counter
	commitFailures  *prometheus.CounterVec
	stockRejections prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		salesCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "sales_committed_total",
			Help:      "Sales persisted by checkout.",
		}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "revenue_total",
			Help:      "Sum of committed sale totals.",
		}),
		commitFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "commit_failures_total",
			Help:      "Checkout failures by the step that failed.",
		}, []string{"step"}),
		stockRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "cart_stock_rejections_total",
			Help:      "Cart changes refused for insufficient stock.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.salesCommitted, m.revenue, m.commitFailures, m.stockRejections)
	}
	return m
}

func (m *Metrics) saleCommitted(total decimal.Decimal) {
	if m == nil {
		return
	}
	m.salesCommitted.Inc()
	m.revenue.Add(total.InexactFloat64())
}

func (m *Metrics) commitFailed(step string) {
	if m == nil {
		return
	}
	m.commitFailures.WithLabelValues(step).Inc()
}

func (m *Metrics) stockRejected() {
	if m == nil {
		return
	}
	m.stockRejections.Inc()
}
