package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of registered users",
		},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	SessionsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_issued_total",
			Help: "Total number of sessions issued",
		},
	)

	SessionsRevoked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_revoked_total",
			Help: "Total number of sessions removed by logout",
		},
	)

	SessionsCleanupDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_cleanup_deleted_total",
			Help: "Total number of expired sessions deleted during cleanup",
		},
	)

	SessionValidationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_validations_total",
			Help: "Total number of session validations",
		},
	)

	SessionValidationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_validations_failed_total",
			Help: "Total number of failed session validations",
		},
	)

	PasswordChanges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "password_changes_total",
			Help: "Total number of successful password changes",
		},
	)
)
