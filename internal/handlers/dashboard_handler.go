package handlers

import (
	"net/http"

	"mis-backend/internal/services"
	"mis-backend/pkg/utils"
)

// DashboardHandler serves the landing-page snapshot.
type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Snapshot handles GET /api/dashboard
func (h *DashboardHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, snap)
}
