package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"coderr-web/logger"
)

const recoveredBody = "Interner Serverfehler. Bitte laden Sie die Seite neu."

// NewRecoveryMiddleware answers a panicking handler with a 500 and logs the
// stack under the session that triggered it. A nil log uses the default logger.
func NewRecoveryMiddleware(log *slog.Logger) func(next http.Handler) http.Handler {
	if log == nil {
		log = logger.Component("Recovery")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("offer list handler panicked",
					slog.Any("panic", rec),
					slog.String("route", routeOf(r)),
					slog.String("session_id", SessionIDFromContext(r.Context())),
					slog.String("stack", string(debug.Stack())),
				)
				w.Header().Set("Cache-Control", "no-store")
				http.Error(w, recoveredBody, http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
