package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"seo_meta_analyzer/internal/pkg/errors"
	"seo_meta_analyzer/internal/service"

	log "github.com/sirupsen/logrus"
)

// maxRequestBodyBytes caps JSON request bodies.
const maxRequestBodyBytes = 1 << 20

type AnalyzeHandler struct {
	service *service.Analyzer
	log     *log.Logger
}

type AnalyzeRequest struct {
	URL string `json:"url"`
}

// Normalize trims the URL, defaults the scheme to https and checks that the
// result is an absolute http(s) URL.
func (r *AnalyzeRequest) Normalize() (string, error) {
	raw := strings.TrimSpace(r.URL)
	if raw == "" {
		return "", errors.E(errors.InvalidInput, `URL is required`, nil)
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.E(errors.InvalidInput, `Invalid URL format`, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.E(errors.InvalidInput, `Only http and https URLs are supported`, nil)
	}

	if u.Host == "" {
		return "", errors.E(errors.InvalidInput, `Invalid URL format`, nil)
	}

	return u.String(), nil
}

func NewAnalyzeHandler(service *service.Analyzer, log *log.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		service: service,
		log:     log,
	}
}

func (h *AnalyzeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	h.log.Debug(`analyze handler called`)

	var request AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&request); err != nil {
		h.log.WithError(err).Error(`failed to decode request body`)
		sendError(w, `failed to decode request body`, errors.E(errors.InvalidInput, `Invalid JSON request body`, err))
		return
	}

	pageURL, err := request.Normalize()
	if err != nil {
		h.log.WithError(err).Error(`failed to validate request body`)
		sendError(w, `failed to validate request body`, err)
		return
	}

	result, err := h.service.Analyze(r.Context(), pageURL)
	if err != nil {
		sendError(w, `failed to analyze page`, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
