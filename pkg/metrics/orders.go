package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the order creation workflow, validation through notification.
	OrderCreateLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_create_latency_seconds",
		Help:    "Latency of the order creation workflow",
		Buckets: prometheus.DefBuckets,
	})

	OrdersCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders created, labelled by service category",
	}, []string{"category"})

	OrderValidationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_validation_failures_total",
		Help: "Rejected order submissions, labelled by service category",
	}, []string{"category"})

	NotificationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_send_failures_total",
		Help: "Emails the relay failed to deliver",
	})
)

func Init() {
	prometheus.MustRegister(
		OrderCreateLatency,
		OrdersCreated,
		OrderValidationFailures,
		NotificationFailures,
	)
}
