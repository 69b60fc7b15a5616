package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectionsOnline = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "course_service_connections_online",
		Help: "Live websocket connections.",
	})

	PaymentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "course_service_payments_created_total",
		Help: "Payments entering the waiting state.",
	})
	PaymentsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "course_service_payments_confirmed_total",
		Help: "Payments confirmed by an operator.",
	})
	PaymentsCanceled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "course_service_payments_canceled_total",
		Help: "Payments canceled by an operator.",
	})

	NotificationsLive = promauto.NewCounter(prometheus.CounterOpts{
		Name: "course_service_notifications_live_total",
		Help: "Notifications delivered to at least one live connection.",
	})
	NotificationsQueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "course_service_notifications_queued_total",
		Help: "Notifications recorded on the unread counter for offline users.",
	})
)
