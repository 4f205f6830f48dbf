package service

import (
	"github.com/AlibekovAA/ricebook/backend/internal/observability/metrics"
)

func incrementUsersRegistered() {
	metrics.UsersRegistered.Inc()
}

func incrementLoginAttempts(result string) {
	metrics.LoginAttempts.WithLabelValues(result).Inc()
}

func incrementSessionsIssued() {
	metrics.SessionsIssued.Inc()
}

func incrementSessionsRevoked() {
	metrics.SessionsRevoked.Inc()
}

func incrementSessionValidations(ok bool) {
	metrics.SessionValidationsTotal.Inc()
	if !ok {
		metrics.SessionValidationsFailed.Inc()
	}
}

func incrementPasswordChanges() {
	metrics.PasswordChanges.Inc()
}
