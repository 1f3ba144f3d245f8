package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pjt_events_received_total",
		Help: "Total number of webhook events received at the ingress.",
	})

	EventsDuplicate = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pjt_events_duplicate_total",
		Help: "Total number of duplicate webhook deliveries detected.",
	})

	EventsPersistFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pjt_events_persist_failed_total",
		Help: "Total number of events that could not be durably recorded.",
	})

	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pjt_events_dropped_total",
		Help: "Total number of events rejected due to a full pipeline queue.",
	})

	EventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pjt_events_processed_total",
		Help: "Total number of pipeline outcomes, labelled by terminal state.",
	}, []string{"state"})

	EventRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pjt_event_retries_total",
		Help: "Total number of retry requeues scheduled by the pipeline.",
	})

	ProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pjt_event_processing_duration_ms",
		Help:    "Per-event pipeline processing latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})

	QueueUtilization = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pjt_queue_utilization_ratio",
		Help: "Current pipeline queue utilization (0-1).",
	})

	BreakerState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pjt_breaker_state",
		Help: "Event-store circuit breaker state (0 closed, 1 half-open, 2 open).",
	})

	JourneysStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pjt_journeys_started_total",
		Help: "Journey instances created, labelled by definition name.",
	}, []string{"definition"})

	JourneysFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pjt_journeys_finished_total",
		Help: "Journey instances reaching a terminal state, labelled by definition and status.",
	}, []string{"definition", "status"})

	JourneysStuck = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pjt_journeys_stuck_total",
		Help: "Journey instances flagged stuck by inactivity detection.",
	})

	JourneyConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pjt_journey_conflicts_total",
		Help: "Repeated-event conflicts detected on instances, labelled by severity.",
	}, []string{"severity"})

	OutOfOrderEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pjt_out_of_order_events_total",
		Help: "Events recorded with the out-of-order sentinel sequence.",
	})
)
