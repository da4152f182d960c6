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

// DeliveryHandler handles stage-3 HTTP requests.
type DeliveryHandler struct {
	service *services.DeliveryService
}

func NewDeliveryHandler(service *services.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{service: service}
}

// Pending handles GET /api/deliveries/pending
func (h *DeliveryHandler) Pending(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Pending(r.Context(), filterFromQuery(r))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// History handles GET /api/deliveries/history
func (h *DeliveryHandler) History(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.History(r.Context(), filterFromQuery(r))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// Create handles POST /api/deliveries
func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.service.Create(r.Context(), &req)
	if err != nil {
		metrics.StageRejectionsTotal.WithLabelValues("delivery").Inc()
		utils.Error(w, statusForQtyError(err), err.Error())
		return
	}

	metrics.StageSubmissionsTotal.WithLabelValues("delivery").Inc()
	cache.InvalidateDashboard(r.Context())
	utils.JSON(w, http.StatusCreated, entry)
}
