package handlers

import (
	"encoding/json"
	"net/http"

	"mis-backend/internal/cache"
	"mis-backend/internal/metrics"
	"mis-backend/internal/models"
	"mis-backend/internal/services"
	"mis-backend/pkg/utils"
)

// FollowUpHandler handles stage-5 HTTP requests.
type FollowUpHandler struct {
	service *services.FollowUpService
}

func NewFollowUpHandler(service *services.FollowUpService) *FollowUpHandler {
	return &FollowUpHandler{service: service}
}

// Pending handles GET /api/followups/pending
func (h *FollowUpHandler) Pending(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Pending(r.Context(), filterFromQuery(r))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// History handles GET /api/followups/history
func (h *FollowUpHandler) History(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.History(r.Context(), filterFromQuery(r))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// Submit handles POST /api/followups
func (h *FollowUpHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.FollowUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		metrics.StageRejectionsTotal.WithLabelValues("followup").Inc()
		utils.Error(w, statusForQtyError(err), err.Error())
		return
	}

	metrics.StageSubmissionsTotal.WithLabelValues("followup").Inc()
	cache.InvalidateDashboard(r.Context())
	utils.JSON(w, http.StatusCreated, entry)
}
