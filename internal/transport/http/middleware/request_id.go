package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/baechuer/inventory-service/internal/pkg/requestid"
)

const HeaderXRequestID = "X-Request-Id"

// RequestID reuses an incoming X-Request-Id or mints a new one, echoes it on
// the response, and stores it in the request context for logging.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set(HeaderXRequestID, reqID)

		ctx := requestid.With(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
