package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AccessLog пишет строку на каждый запрос. 5xx уходят в Error, 4xx в Warn.
func AccessLog(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			status := rec.statusCode()
			log := logger.Info
			switch {
			case status >= http.StatusInternalServerError:
				log = logger.Error
			case status >= http.StatusBadRequest:
				log = logger.Warn
			}
			log("HTTP %s %s - status=%d, bytes=%d, duration_ms=%d, request_id=%s",
				r.Method, r.URL.Path, status, rec.bytes, time.Since(start).Milliseconds(), GetRequestID(r.Context()))
		})
	}
}
