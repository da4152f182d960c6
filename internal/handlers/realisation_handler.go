package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"mis-backend/internal/cache"
	"mis-backend/internal/metrics"
	"mis-backend/internal/models"
	"mis-backend/internal/pipeline"
	"mis-backend/internal/services"
	"mis-backend/pkg/utils"
)

// RealisationHandler handles stage-2 HTTP requests.
type RealisationHandler struct {
	service *services.RealisationService
}

func NewRealisationHandler(service *services.RealisationService) *RealisationHandler {
	return &RealisationHandler{service: service}
}

// Pending handles GET /api/realisations/pending
func (h *RealisationHandler) Pending(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Pending(r.Context(), filterFromQuery(r))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// History handles GET /api/realisations/history
func (h *RealisationHandler) History(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.History(r.Context(), filterFromQuery(r))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// Realise handles POST /api/realisations
func (h *RealisationHandler) Realise(w http.ResponseWriter, r *http.Request) {
	var req models.RealiseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.service.Realise(r.Context(), &req)
	if err != nil {
		metrics.StageRejectionsTotal.WithLabelValues("realisation").Inc()
		utils.Error(w, statusForQtyError(err), err.Error())
		return
	}

	metrics.StageSubmissionsTotal.WithLabelValues("realisation").Inc()
	cache.InvalidateDashboard(r.Context())
	utils.JSON(w, http.StatusCreated, entry)
}

// statusForQtyError maps apportionment failures to 422 so clients can
// distinguish a business rejection from a malformed request.
func statusForQtyError(err error) int {
	if errors.Is(err, pipeline.ErrQtyExceedsRemaining) || errors.Is(err, pipeline.ErrQtyNotPositive) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}
