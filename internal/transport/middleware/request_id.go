package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/oneirolab/oneiro-backend/pkg/ctxutil"
)

const requestIDHeader = "X-Request-Id"

// RequestID assigns each request an id, stores it in the context, and
// echoes it in the response. An inbound header value is honored only when
// it parses as a UUID; anything else is replaced rather than propagated.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}

		ctx := ctxutil.WithRequestID(r.Context(), id)
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
