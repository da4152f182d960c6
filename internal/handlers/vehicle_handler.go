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

// VehicleHandler handles stage-4 HTTP requests.
type VehicleHandler struct {
	service *services.VehicleService
}

func NewVehicleHandler(service *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// Pending handles GET /api/vehicles/pending
func (h *VehicleHandler) Pending(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Pending(r.Context(), filterFromQuery(r))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// History handles GET /api/vehicles/history
func (h *VehicleHandler) History(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.History(r.Context(), filterFromQuery(r))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// Place handles POST /api/vehicles
func (h *VehicleHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req models.PlaceVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.service.Place(r.Context(), &req)
	if err != nil {
		metrics.StageRejectionsTotal.WithLabelValues("vehicle").Inc()
		utils.Error(w, statusForQtyError(err), err.Error())
		return
	}

	metrics.StageSubmissionsTotal.WithLabelValues("vehicle").Inc()
	cache.InvalidateDashboard(r.Context())
	utils.JSON(w, http.StatusCreated, entry)
}
