package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"seo_meta_analyzer/internal/pkg/requestid"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const requestIDHeader = `x-request-id`

// RequestIDLoggerMiddleware sets CORS headers, tags each request with an id,
// writes the access log and turns panics into a 500 JSON response.
func RequestIDLoggerMiddleware(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, reqID)

			w.Header().Set(`Access-Control-Allow-Origin`, `*`)
			w.Header().Set(`Access-Control-Allow-Methods`, `POST, GET, OPTIONS`)
			w.Header().Set(`Access-Control-Allow-Headers`, `Content-Type, x-request-id`)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			ctx := requestid.NewContext(r.Context(), reqID)
			srw := &requestIdStatusRecorder{ResponseWriter: w, status: http.StatusOK}

			start := time.Now()
			defer func() {
				entry := logger.WithFields(log.Fields{
					`method`:     r.Method,
					`path`:       r.URL.Path,
					`status`:     srw.status,
					`request_id`: reqID,
					`duration`:   time.Since(start).String(),
				})

				if rec := recover(); rec != nil {
					entry = entry.WithFields(log.Fields{
						`error`: fmt.Sprintf(`%v`, rec),
						`stack`: string(debug.Stack()),
					})
					entry.Error(`panic recovered`)
					srw.Header().Set(`Content-Type`, `application/json`)
					srw.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(srw).Encode(map[string]any{
						`message`:    `internal server error`,
						`code`:       http.StatusInternalServerError,
						`request_id`: reqID,
					})
				} else if srw.status >= 400 {
					entry.Error(`request completed with error status`)
				} else {
					entry.Info(`request completed`)
				}
			}()

			next.ServeHTTP(srw, r.WithContext(ctx))
		})
	}
}

type requestIdStatusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *requestIdStatusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
