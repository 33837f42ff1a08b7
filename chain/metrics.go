package chain

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the counters the host keeps about executed requests.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RejectionsTotal *prometheus.CounterVec
	MintsTotal      *prometheus.CounterVec
	PayoutsTotal    *prometheus.CounterVec
	Height          prometheus.Gauge
}

// NewMetrics registers the host metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mintd_requests_total",
				Help: "Total number of execute requests by action and status",
			},
			[]string{"action", "status"},
		),
		RejectionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mintd_rejections_total",
				Help: "Total number of rejected execute requests by reason",
			},
			[]string{"reason"},
		),
		MintsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mintd_mints_total",
				Help: "Total number of items minted by collection and phase",
			},
			[]string{"collection", "phase"},
		),
		PayoutsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mintd_payouts_total",
				Help: "Total amount paid to beneficiaries, in base units",
			},
			[]string{"denom"},
		),
		Height: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "mintd_block_height",
				Help: "Height of the last committed block",
			},
		),
	}
}
