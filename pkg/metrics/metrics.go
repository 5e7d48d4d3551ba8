package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Количество HTTP-запросов",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Время обработки HTTP-запроса",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	RequestsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_requests_submitted_total",
		Help: "Количество поданных заявок по типу",
	}, []string{"type"})

	RequestsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_requests_resolved_total",
		Help: "Количество обработанных заявок по типу и статусу",
	}, []string{"type", "status"})

	RequestsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_requests_swept_total",
		Help: "Количество удалённых обработанных заявок",
	})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_notifications_sent_total",
		Help: "Количество отправленных уведомлений",
	}, []string{"kind"})

	RoleLookupRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_role_lookup_retries_total",
		Help: "Количество повторных попыток чтения роли",
	})

	RoleLookupFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_role_lookup_fallbacks_total",
		Help: "Сколько раз роль не удалось прочитать и была выдана роль по умолчанию",
	})
)
