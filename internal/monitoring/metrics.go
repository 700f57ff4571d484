package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	holdsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketing_holds_created_total",
		Help: "Seat holds created (one per batch, not per seat).",
	})

	settlements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ticketing_settlements_total",
		Help: "Settlement attempts by terminal reason code.",
	}, []string{"reason"})

	callbacksRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ticketing_callbacks_rejected_total",
		Help: "Gateway callbacks rejected before settlement.",
	}, []string{"cause"})

	admissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ticketing_admissions_total",
		Help: "Gate scans by direction and result.",
	}, []string{"direction", "result"})

	refundsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ticketing_refunds_resolved_total",
		Help: "Refund reports resolved by decision.",
	}, []string{"decision"})
)

func TrackHoldCreated()                  { holdsCreated.Inc() }
func TrackSettlement(reason string)      { settlements.WithLabelValues(reason).Inc() }
func TrackCallbackRejected(cause string) { callbacksRejected.WithLabelValues(cause).Inc() }
func TrackRefund(decision string)        { refundsResolved.WithLabelValues(decision).Inc() }

func TrackAdmission(direction string, ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	admissions.WithLabelValues(direction, result).Inc()
}
