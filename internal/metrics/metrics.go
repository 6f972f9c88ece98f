// Package metrics collects and exposes Prometheus metrics for the
// help-request lifecycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector registers and updates the application counters.
type Collector struct {
	requestsCreated *prometheus.CounterVec
	transitions     *prometheus.CounterVec
	nearbyQueries   prometheus.Counter
	eventsPublished *prometheus.CounterVec
	eventsFailed    prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with the
// given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requestsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "help_nearby_requests_created_total",
			Help: "Total number of help requests created, by category.",
		}, []string{"category"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "help_nearby_transitions_total",
			Help: "Total number of lifecycle transitions, by resulting status.",
		}, []string{"status"}),
		nearbyQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "help_nearby_proximity_queries_total",
			Help: "Total number of proximity queries served.",
		}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "help_nearby_events_published_total",
			Help: "Total number of domain events published, by type.",
		}, []string{"type"}),
		eventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "help_nearby_events_failed_total",
			Help: "Total number of domain events that failed to publish.",
		}),
	}

	reg.MustRegister(
		c.requestsCreated,
		c.transitions,
		c.nearbyQueries,
		c.eventsPublished,
		c.eventsFailed,
	)
	return c
}

func (c *Collector) RecordRequestCreated(category string) {
	c.requestsCreated.WithLabelValues(category).Inc()
}

func (c *Collector) RecordTransition(status string) {
	c.transitions.WithLabelValues(status).Inc()
}

func (c *Collector) RecordNearbyQuery() {
	c.nearbyQueries.Inc()
}

func (c *Collector) RecordEventPublished(eventType string) {
	c.eventsPublished.WithLabelValues(eventType).Inc()
}

func (c *Collector) RecordEventFailed() {
	c.eventsFailed.Inc()
}
