package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"mis-backend/internal/middleware"
	"mis-backend/internal/services"
	"mis-backend/pkg/utils"
)

// BackupHandler handles ledger snapshot and restore requests.
type BackupHandler struct {
	service *services.BackupService
}

func NewBackupHandler(service *services.BackupService) *BackupHandler {
	return &BackupHandler{service: service}
}

// Create handles POST /api/backups
func (h *BackupHandler) Create(w http.ResponseWriter, r *http.Request) {
	key, err := h.service.Backup(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user, ok := middleware.GetUsernameFromContext(r.Context()); ok {
		log.Printf("[Backup] Snapshot %s triggered by %s", key, user)
	}
	utils.JSON(w, http.StatusCreated, map[string]string{"key": key})
}

// List handles GET /api/backups
func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	backups, err := h.service.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, backups)
}

// Restore handles POST /api/backups/restore
func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Restore(r.Context(), req.Key); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user, ok := middleware.GetUsernameFromContext(r.Context()); ok {
		log.Printf("[Backup] Restore of %q triggered by %s", req.Key, user)
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Snapshot restored"})
}
