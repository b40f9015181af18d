// internal/app/helpers.go
package app

import (
	"database/sql"

	"github.com/sirupsen/logrus"
)

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// logDispatchOutcome summarizes a batch of notification results. Individual
// failures were already logged by the dispatcher with full detail.
func logDispatchOutcome(logger *logrus.Logger, event string, results []Result) {
	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	if failed > 0 {
		logger.Warnf("Notifications for %q: %d of %d failed", event, failed, len(results))
	}
}
