package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"taskdesk/internal/platform/db"
	"taskdesk/internal/platform/metrics"
	"taskdesk/internal/transport/http/api"
)

// DBSession checks out one database handle per request and releases it when
// the handler returns, including when it panics.
func DBSession(acquirer db.Acquirer, collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			handle, err := acquirer.Acquire(r.Context())
			if collector != nil {
				collector.RecordAcquire(time.Since(start), err)
			}
			if err != nil {
				slog.Error("acquire db handle failed", "err", err, "requestId", GetRequestID(r.Context()))
				api.Fail(w, http.StatusServiceUnavailable, "db_unavailable", "database unavailable", GetRequestID(r.Context()))
				return
			}
			defer handle.Release()
			next.ServeHTTP(w, r.WithContext(db.WithHandle(r.Context(), handle)))
		})
	}
}
