package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"seo_meta_analyzer/internal/adaptors"
	"seo_meta_analyzer/internal/domain/models"
	"seo_meta_analyzer/internal/pkg/errors"
	"seo_meta_analyzer/internal/service"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWebClient struct {
	mock.Mock
}

func (m *MockWebClient) Fetch(ctx context.Context, url string) (*models.FetchedPage, error) {
	args := m.Called(ctx, url)
	page, _ := args.Get(0).(*models.FetchedPage)
	return page, args.Error(1)
}

const testPage = `<html><head><title>Example Domain Home</title>
<meta name="description" content="An example page"></head><body></body></html>`

func newTestRouter(t *testing.T) (*chi.Mux, *MockWebClient) {
	t.Helper()
	logger := log.New()
	webClient := new(MockWebClient)
	analyzer := service.NewAnalyzer(logger, webClient, adaptors.NewMemoryHistory(100, logger))
	history := NewHistoryHandler(analyzer, 5, logger)

	r := chi.NewRouter()
	r.Get("/ready", NewReadyHandler().Handle)
	r.Post("/api/analyze", NewAnalyzeHandler(analyzer, logger).Handle)
	r.Post("/api/score", NewScoreHandler(analyzer, logger).Handle)
	r.Get("/api/recent", history.Recent)
	r.Get("/api/analyses", history.Latest)
	r.Get("/api/analyses/{id}", history.Get)
	return r, webClient
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestAnalyzeRequest_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{"https url", "https://example.com/page", "https://example.com/page", false},
		{"http url", "http://example.com", "http://example.com", false},
		{"missing scheme", "example.com/about", "https://example.com/about", false},
		{"surrounding spaces", "  example.com  ", "https://example.com", false},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
		{"ftp scheme", "ftp://example.com", "", true},
		{"no host", "https://", "", true},
		{"bad port", "example.com:port", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := AnalyzeRequest{URL: tt.input}
			got, err := req.Normalize()
			if tt.expectErr {
				require.Error(t, err)
				assert.Equal(t, errors.InvalidInput, errors.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestReadyHandler(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(r, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestAnalyzeHandler(t *testing.T) {
	r, webClient := newTestRouter(t)
	webClient.On("Fetch", mock.Anything, "https://example.com").Return(&models.FetchedPage{
		Body:       []byte(testPage),
		StatusCode: http.StatusOK,
		FinalURL:   "https://example.com/",
	}, nil).Once()

	rec := do(r, http.MethodPost, "/api/analyze", `{"url":"example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result models.AnalysisResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, "Example Domain Home", result.Metadata.Title)
	assert.Equal(t, service.ComputeScore(result.Metadata), result.Report)
	assert.NotEmpty(t, result.Recommendations)
	assert.NotEmpty(t, result.Tags)

	webClient.AssertExpectations(t)
}

func TestAnalyzeHandler_Errors(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		page         *models.FetchedPage
		fetchErr     error
		expectedCode int
		expectedKind string
	}{
		{name: "malformed json", body: `{"url":`, expectedCode: http.StatusBadRequest, expectedKind: "invalid_input"},
		{name: "empty url", body: `{"url":""}`, expectedCode: http.StatusBadRequest, expectedKind: "invalid_input"},
		{name: "unsupported scheme", body: `{"url":"ftp://example.com"}`, expectedCode: http.StatusBadRequest, expectedKind: "invalid_input"},
		{
			name:         "upstream not found",
			body:         `{"url":"https://example.com"}`,
			page:         &models.FetchedPage{StatusCode: http.StatusNotFound},
			expectedCode: http.StatusBadGateway,
			expectedKind: "unreachable",
		},
		{
			name:         "unreachable",
			body:         `{"url":"https://example.com"}`,
			fetchErr:     errors.New("dial tcp: no such host"),
			expectedCode: http.StatusBadGateway,
			expectedKind: "unreachable",
		},
		{
			name:         "timeout",
			body:         `{"url":"https://example.com"}`,
			fetchErr:     errors.E(errors.Timeout, "Analysis timed out.", context.DeadlineExceeded),
			expectedCode: http.StatusGatewayTimeout,
			expectedKind: "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, webClient := newTestRouter(t)
			if tt.page != nil || tt.fetchErr != nil {
				webClient.On("Fetch", mock.Anything, mock.Anything).Return(tt.page, tt.fetchErr).Once()
			}

			rec := do(r, http.MethodPost, "/api/analyze", tt.body)
			assert.Equal(t, tt.expectedCode, rec.Code)

			body := rec.Body.String()
			assert.NotContains(t, body, ".go:")
			assert.NotContains(t, body, "caused by")

			resp := decodeError(t, rec)
			assert.Equal(t, tt.expectedCode, resp.Code)
			assert.Equal(t, tt.expectedKind, resp.Error)
			assert.NotEmpty(t, resp.Message)
			webClient.AssertExpectations(t)
		})
	}
}

func TestScoreHandler(t *testing.T) {
	r, webClient := newTestRouter(t)

	body := `{
		"url": "https://example.com/",
		"title": "Example Domain Home",
		"metaTags": {"description": {"content": "short"}},
		"socialTags": {"openGraph": [], "twitter": []},
		"linkTags": {"hreflang": []}
	}`
	rec := do(r, http.MethodPost, "/api/score", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScoreResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	meta := models.PageMetadata{
		URL:      "https://example.com/",
		Title:    "Example Domain Home",
		MetaTags: models.MetaTags{Description: &models.ContentTag{Content: "short"}},
	}
	assert.Equal(t, service.ComputeScore(meta), resp.Report)
	assert.Len(t, resp.Recommendations, len(service.ComputeRecommendations(meta)))
	assert.Len(t, resp.Tags, len(service.EvaluateTags(meta)))
	webClient.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestScoreHandler_InvalidMetadata(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(r, http.MethodPost, "/api/score", `{"url":"https://example.com/","socialTags":{"openGraph":[{"property":"title","content":"x"}]}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, http.StatusBadRequest, decodeError(t, rec).Code)
}

func TestHistoryHandlers(t *testing.T) {
	r, webClient := newTestRouter(t)
	webClient.On("Fetch", mock.Anything, mock.Anything).Return(&models.FetchedPage{
		Body:       []byte(testPage),
		StatusCode: http.StatusOK,
	}, nil)

	for _, u := range []string{"https://a.example", "https://b.example", "https://c.example"} {
		rec := do(r, http.MethodPost, "/api/analyze", `{"url":"`+u+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	t.Run("recent default limit", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/api/recent", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var summaries []models.AnalysisSummary
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&summaries))
		require.Len(t, summaries, 3)
		assert.Equal(t, "https://c.example", summaries[0].URL)
		assert.Equal(t, "An example page", summaries[0].Description)
	})

	t.Run("recent explicit limit", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/api/recent?limit=2", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var summaries []models.AnalysisSummary
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&summaries))
		assert.Len(t, summaries, 2)
	})

	t.Run("recent invalid limit", func(t *testing.T) {
		for _, q := range []string{"abc", "0", "-3"} {
			rec := do(r, http.MethodGet, "/api/recent?limit="+q, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/api/analyses/2", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var result models.AnalysisResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		assert.Equal(t, int64(2), result.ID)
		assert.Equal(t, "https://b.example", result.Metadata.URL)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/api/analyses/42", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "analysis not found", decodeError(t, rec).Message)
	})

	t.Run("latest by url", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/api/analyses?url=b.example", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var result models.AnalysisResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		assert.Equal(t, int64(2), result.ID)
		assert.Equal(t, "https://b.example", result.RequestedURL)
	})

	t.Run("latest by unknown url", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/api/analyses?url=https://z.example", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", decodeError(t, rec).Error)
	})

	t.Run("latest without url", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/api/analyses", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/api/analyses/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{errors.E(errors.InvalidInput, "bad", nil), http.StatusBadRequest},
		{errors.E(errors.NotFound, "missing", nil), http.StatusNotFound},
		{errors.E(errors.Unreachable, "down", nil), http.StatusBadGateway},
		{errors.E(errors.Timeout, "slow", nil), http.StatusGatewayTimeout},
		{errors.E(errors.ParsingFailed, "broken", nil), http.StatusInternalServerError},
		{errors.E(errors.Canceled, "gone", nil), statusClientClosedRequest},
		{errors.New("plain"), http.StatusInternalServerError},
		{errors.Wrap(errors.E(errors.NotFound, "missing", nil), "wrapped"), http.StatusNotFound},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, statusFor(tt.err), tt.err.Error())
	}
}
