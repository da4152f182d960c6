package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"mis-backend/internal/services"
	"mis-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// ReportHandler serves printable PDFs.
type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// DeliveryOrderPDF handles GET /api/reports/delivery-order/{id}
func (h *ReportHandler) DeliveryOrderPDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	pdfBytes, err := h.service.DeliveryOrderPDF(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=delivery-order-%d.pdf", id))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
