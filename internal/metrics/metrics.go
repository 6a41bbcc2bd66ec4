package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring the order/notification pipeline
var (
	OrdersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders persisted",
		},
	)

	EventsPublished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_events_published_total",
			Help: "Total number of order events published to the bus",
		},
	)

	PublishFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_event_publish_failures_total",
			Help: "Total number of order event publish attempts that failed",
		},
	)

	EventsConsumed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_events_consumed_total",
			Help: "Total number of order events consumed from the bus",
		},
	)

	SubscriberReconnects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "subscriber_reconnect_attempts_total",
			Help: "Total number of failed bus connection attempts by the subscriber",
		},
	)
)

func init() {
	prometheus.MustRegister(
		OrdersCreated,
		EventsPublished,
		PublishFailures,
		EventsConsumed,
		SubscriberReconnects,
	)
}
