package httpx

import (
	"net/http"
	"runtime/debug"

	"playerapi/internal/platform/logger"
)

func RecoveryMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := wrapResponseWriter(w)
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					log.Error(r.Context(), "panic recovered",
						logger.String("request_id", RequestIDFrom(r)),
						logger.Any("panic", err),
						logger.String("stack", string(debug.Stack())),
					)
					if !rw.wroteHeader() {
						JSONError(rw, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
					}
				}
			}()
			next.ServeHTTP(rw, r)
		})
	}
}
