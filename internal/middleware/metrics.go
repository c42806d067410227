package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sakif/starwars-api/internal/metrics"
)

// Metrics records request count and latency per chi route pattern.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		wrapped := wrap(w)
		next.ServeHTTP(wrapped, r)

		metrics.RecordAPIRequest(r.Method, routePattern(r), strconv.Itoa(wrapped.statusCode), time.Since(start))
	})
}
