package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	updatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Inbound Telegram updates by kind (command/message/contact).",
		},
		[]string{"kind"},
	)

	registrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_registrations_total",
			Help: "Completed registration flows.",
		},
	)

	ratingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_ratings_total",
			Help: "Accepted service ratings by star count.",
		},
		[]string{"stars"},
	)

	supportTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_support_requests_total",
			Help: "Support messages forwarded to the admin.",
		},
	)

	adminDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_admin_denied_total",
			Help: "Privileged commands rejected for non-admin callers.",
		},
	)

	notifyFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_notify_failures_total",
			Help: "Best-effort admin notifications that failed to send.",
		},
	)

	exportRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_export_runs_total",
			Help: "Spreadsheet export runs by outcome.",
		},
		[]string{"success"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			updatesTotal, registrationsTotal, ratingsTotal,
			supportTotal, adminDeniedTotal, notifyFailuresTotal,
			exportRunsTotal,
		)
	})
}

func IncUpdate(kind string)          { updatesTotal.WithLabelValues(kind).Inc() }
func IncRegistration()               { registrationsTotal.Inc() }
func IncRating(stars int)            { ratingsTotal.WithLabelValues(strconv.Itoa(stars)).Inc() }
func IncSupportRequest()             { supportTotal.Inc() }
func IncAdminDenied()                { adminDeniedTotal.Inc() }
func IncNotifyFailure()              { notifyFailuresTotal.Inc() }
func IncExportRun(success bool)      { exportRunsTotal.WithLabelValues(strconv.FormatBool(success)).Inc() }
