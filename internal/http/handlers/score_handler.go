package handlers

import (
	"encoding/json"
	"net/http"

	"seo_meta_analyzer/internal/domain/models"
	"seo_meta_analyzer/internal/pkg/errors"
	"seo_meta_analyzer/internal/service"

	log "github.com/sirupsen/logrus"
)

type ScoreHandler struct {
	service *service.Analyzer
	log     *log.Logger
}

type ScoreResponse struct {
	Report          models.ScoreReport      `json:"report"`
	Recommendations []models.Recommendation `json:"recommendations"`
	Tags            []models.TagStatus      `json:"tags"`
}

func NewScoreHandler(service *service.Analyzer, log *log.Logger) *ScoreHandler {
	return &ScoreHandler{
		service: service,
		log:     log,
	}
}

func (h *ScoreHandler) Handle(w http.ResponseWriter, r *http.Request) {
	h.log.Debug(`score handler called`)

	var meta models.PageMetadata
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&meta); err != nil {
		h.log.WithError(err).Error(`failed to decode request body`)
		sendError(w, `failed to decode request body`, errors.E(errors.InvalidInput, `Invalid JSON request body`, err))
		return
	}

	result, err := h.service.Score(r.Context(), meta)
	if err != nil {
		sendError(w, `failed to score metadata`, err)
		return
	}

	writeJSON(w, http.StatusOK, ScoreResponse{
		Report:          result.Report,
		Recommendations: result.Recommendations,
		Tags:            result.Tags,
	})
}
