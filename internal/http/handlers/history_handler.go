package handlers

import (
	"net/http"
	"strconv"

	"seo_meta_analyzer/internal/pkg/errors"
	"seo_meta_analyzer/internal/service"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

// MaxRecentLimit caps the limit query parameter of the recent listing.
const MaxRecentLimit = 50

type HistoryHandler struct {
	service      *service.Analyzer
	defaultLimit int
	log          *log.Logger
}

func NewHistoryHandler(service *service.Analyzer, defaultLimit int, log *log.Logger) *HistoryHandler {
	return &HistoryHandler{
		service:      service,
		defaultLimit: defaultLimit,
		log:          log,
	}
}

// Recent lists the newest analyses.
func (h *HistoryHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := h.defaultLimit
	if raw := r.URL.Query().Get(`limit`); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			sendError(w, `invalid limit`, errors.E(errors.InvalidInput, `limit must be a positive integer`, err))
			return
		}
		limit = n
	}
	limit = min(limit, MaxRecentLimit)

	summaries, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		sendError(w, `failed to list recent analyses`, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// Get returns one stored analysis by id.
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, `id`), 10, 64)
	if err != nil || id < 1 {
		sendError(w, `invalid analysis id`, errors.E(errors.InvalidInput, `analysis id must be a positive integer`, err))
		return
	}

	result, err := h.service.Get(r.Context(), id)
	if err != nil {
		sendError(w, `failed to get analysis`, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Latest returns the newest stored analysis of the url query parameter. The
// url is normalized like an analyze request.
func (h *HistoryHandler) Latest(w http.ResponseWriter, r *http.Request) {
	request := AnalyzeRequest{URL: r.URL.Query().Get(`url`)}
	pageURL, err := request.Normalize()
	if err != nil {
		sendError(w, `invalid url`, err)
		return
	}

	result, err := h.service.Latest(r.Context(), pageURL)
	if err != nil {
		sendError(w, `failed to get analysis`, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
