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

// ReceivingHandler handles stage-6 HTTP requests.
type ReceivingHandler struct {
	service *services.ReceivingService
}

func NewReceivingHandler(service *services.ReceivingService) *ReceivingHandler {
	return &ReceivingHandler{service: service}
}

// Pending handles GET /api/receivings/pending
func (h *ReceivingHandler) Pending(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Pending(r.Context(), filterFromQuery(r))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// History handles GET /api/receivings/history
func (h *ReceivingHandler) History(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.History(r.Context(), filterFromQuery(r))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// Receive handles POST /api/receivings
func (h *ReceivingHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var req models.ReceiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.service.Receive(r.Context(), &req)
	if err != nil {
		metrics.StageRejectionsTotal.WithLabelValues("receiving").Inc()
		utils.Error(w, statusForQtyError(err), err.Error())
		return
	}

	metrics.StageSubmissionsTotal.WithLabelValues("receiving").Inc()
	cache.InvalidateDashboard(r.Context())
	utils.JSON(w, http.StatusCreated, entry)
}
