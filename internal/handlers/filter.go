package handlers

import (
	"net/http"

	"mis-backend/internal/models"
)

// filterFromQuery reads the shared stage-listing filter parameters.
func filterFromQuery(r *http.Request) models.ListFilter {
	q := r.URL.Query()
	return models.ListFilter{
		ProjectName: q.Get("projectName"),
		PartyName:   q.Get("partyName"),
		StartDate:   q.Get("startDate"),
		EndDate:     q.Get("endDate"),
	}
}
