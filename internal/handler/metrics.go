package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	notificationsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "push_relay_notifications_sent_total",
		Help: "Total number of notifications accepted by the push provider.",
	})

	notificationsFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "push_relay_notifications_failed_total",
			Help: "Total number of failed dispatch requests by error code.",
		},
		[]string{"code"},
	)

	tokenReadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "push_relay_token_reads_total",
		Help: "Total number of successful token read requests.",
	})

	tokenUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "push_relay_token_updates_total",
		Help: "Total number of successful token updates.",
	})
)
