package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketbook",
			Name:      "booking_created_total",
			Help:      "Count of booking requests created by status.",
		},
		[]string{"status"},
	)

	ownerDecision = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketbook",
			Name:      "owner_decision_total",
			Help:      "Count of owner decisions over booking requests.",
		},
		[]string{"decision"},
	)

	slotQueries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "marketbook",
			Name:      "slot_queries_total",
			Help:      "Count of time slot generation requests.",
		},
	)

	snapshotCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketbook",
			Name:      "booking_snapshot_cache_total",
			Help:      "Confirmed-bookings snapshot cache lookups by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, ownerDecision, slotQueries, snapshotCache)
	})
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncOwnerDecision(decision string) {
	ownerDecision.WithLabelValues(decision).Inc()
}

func IncSlotQuery() {
	slotQueries.Inc()
}

func IncSnapshotCache(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	snapshotCache.WithLabelValues(outcome).Inc()
}
