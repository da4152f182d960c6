package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"mis-backend/internal/cache"
	"mis-backend/internal/metrics"
	"mis-backend/internal/models"
	"mis-backend/internal/services"
	"mis-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// EnquiryHandler handles stage-1 HTTP requests.
type EnquiryHandler struct {
	service *services.EnquiryService
}

func NewEnquiryHandler(service *services.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{service: service}
}

// Create handles POST /api/enquiries
func (h *EnquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEnquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	enquiry, err := h.service.Create(r.Context(), &req)
	if err != nil {
		metrics.StageRejectionsTotal.WithLabelValues("enquiry").Inc()
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics.StageSubmissionsTotal.WithLabelValues("enquiry").Inc()
	cache.InvalidateDashboard(r.Context())
	utils.JSON(w, http.StatusCreated, enquiry)
}

// Pending handles GET /api/enquiries/pending
func (h *EnquiryHandler) Pending(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Pending(r.Context(), filterFromQuery(r))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// History handles GET /api/enquiries/history
func (h *EnquiryHandler) History(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.History(r.Context(), filterFromQuery(r))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// Delete handles DELETE /api/enquiries/{id}
func (h *EnquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid enquiry ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}
	cache.InvalidateDashboard(r.Context())
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Enquiry deleted"})
}
