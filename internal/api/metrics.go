package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bitrix_proxy_http_requests_total",
		Help: "Total HTTP requests handled by the proxy",
	}, []string{"pattern", "status"})

	reqDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bitrix_proxy_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"pattern"})
)

func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			// r.Pattern já está preenchido aqui: o middleware roda depois do
			// match do ServeMux.
			pattern := r.Pattern
			if pattern == "" {
				pattern = r.URL.Path
			}
			reqTotal.WithLabelValues(pattern, strconv.Itoa(rw.status)).Inc()
			reqDuration.WithLabelValues(pattern).Observe(time.Since(start).Seconds())
		})
	}
}
