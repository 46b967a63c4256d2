package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"seo_meta_analyzer/internal/pkg/metrics"
	"seo_meta_analyzer/internal/pkg/requestid"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger() (*log.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := log.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&log.JSONFormatter{})
	return logger, buf
}

func TestRequestIDLoggerMiddleware_GeneratesID(t *testing.T) {
	logger, buf := newLogger()

	var seen string
	h := RequestIDLoggerMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recent", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("x-request-id"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, seen, entry["request_id"])
	assert.Equal(t, "/api/recent", entry["path"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, "error", entry["level"])
}

func TestRequestIDLoggerMiddleware_KeepsIncomingID(t *testing.T) {
	logger, _ := newLogger()

	var seen string
	h := RequestIDLoggerMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	req.Header.Set("x-request-id", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get("x-request-id"))
}

func TestRequestIDLoggerMiddleware_Preflight(t *testing.T) {
	logger, _ := newLogger()

	called := false
	h := RequestIDLoggerMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/analyze", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, called)
}

func TestRequestIDLoggerMiddleware_RecoversPanic(t *testing.T) {
	logger, buf := newLogger()

	h := RequestIDLoggerMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/score", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "boom")
}

func TestMetricsMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/api/analyses/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	notFound := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/analyses/{id}", "404")
	notFoundErrors := metrics.HTTPRequestErrorsTotal.WithLabelValues(http.MethodGet, "/api/analyses/{id}", "404")
	ready := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/ready", "200")
	before, beforeErrors, beforeReady := testutil.ToFloat64(notFound), testutil.ToFloat64(notFoundErrors), testutil.ToFloat64(ready)

	for _, id := range []string{"7", "8"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyses/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, before+2, testutil.ToFloat64(notFound))
	assert.Equal(t, beforeErrors+2, testutil.ToFloat64(notFoundErrors))
	assert.Equal(t, beforeReady+1, testutil.ToFloat64(ready))
}

func TestMetricsMiddleware_UnmatchedRoutesShareOneLabel(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {})

	unmatched := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")
	before := testutil.ToFloat64(unmatched)

	paths := []string{"/wp-login.php", "/.env", "/admin/config.bak"}
	for _, path := range paths {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, before+float64(len(paths)), testutil.ToFloat64(unmatched))
	for _, path := range paths {
		assert.Zero(t, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, path, "404")), path)
	}
}
