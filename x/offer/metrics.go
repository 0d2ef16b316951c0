package offer

import (
	"github.com/iov-one/barter"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	offersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "barter",
		Subsystem: "offers",
		Name:      "created_total",
		Help:      "Number of offers created.",
	})
	offersCancelled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "barter",
		Subsystem: "offers",
		Name:      "cancelled_total",
		Help:      "Number of offers cancelled by their creator.",
	})
	offersAccepted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "barter",
		Subsystem: "offers",
		Name:      "accepted_total",
		Help:      "Number of offers fulfilled.",
	})
	offersActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "barter",
		Subsystem: "offers",
		Name:      "active",
		Help:      "Number of offers in the committed state, as of the last observation.",
	})
	offersRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barter",
		Subsystem: "offers",
		Name:      "rejected_total",
		Help:      "Number of offer messages that failed on delivery, by message path.",
	}, []string{"path"})
)

// RegisterMetrics registers all offer metrics with given registerer.
func RegisterMetrics(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		offersCreated,
		offersCancelled,
		offersAccepted,
		offersActive,
		offersRejected,
	} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveActive sets the active offers gauge from the stored state.
func ObserveActive(db barter.ReadOnlyKVStore) error {
	n, err := CountOffers(db)
	if err != nil {
		return err
	}
	offersActive.Set(float64(n))
	return nil
}
