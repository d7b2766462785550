package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ridebook"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	DocumentsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "documents_created_total", Help: "Documents created per collection"},
		[]string{"collection"},
	)
	BookingUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "booking_updates_total", Help: "Booking updates by resulting status"},
		[]string{"status"},
	)
	IdentifiersIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "identifiers_issued_total", Help: "Sequential identifiers issued per prefix"},
		[]string{"prefix"},
	)
	BookingEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "booking_events_total", Help: "Booking events handed to the broker by delivery result"},
		[]string{"result"},
	)
	DriversOnline = promauto.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "drivers_online", Help: "Number of online drivers"})
	Subscribers   = promauto.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "live_subscribers", Help: "Open live subscriptions"})
)
