package middlewarectx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics записывает длительность запроса в histogram с метками route, method и code.
// route — шаблон маршрута chi, для неизвестных путей "unmatched".
func Metrics(histogram *prometheus.HistogramVec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			histogram.WithLabelValues(route, r.Method, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
		})
	}
}
