package handlers

import (
	"encoding/json"
	"net/http"

	"mis-backend/internal/auth"
	"mis-backend/internal/config"
	"mis-backend/internal/models"
	"mis-backend/pkg/utils"
)

// AuthHandler handles the single-credential admin login.
type AuthHandler struct {
	cfg        *config.Config
	jwtManager *auth.JWTManager
}

func NewAuthHandler(cfg *config.Config, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{cfg: cfg, jwtManager: jwtManager}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.Error(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	if req.Username != h.cfg.Admin.Username || !h.checkPassword(req.Password) {
		utils.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.jwtManager.GenerateToken(req.Username, "admin")
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.JSON(w, http.StatusOK, models.LoginResponse{
		Token: token,
		Name:  h.cfg.Admin.DisplayName,
		Role:  "admin",
	})
}

// checkPassword prefers the bcrypt hash when configured; the plaintext
// password is the development fallback.
func (h *AuthHandler) checkPassword(password string) bool {
	if h.cfg.Admin.PasswordHash != "" {
		return auth.VerifyPassword(h.cfg.Admin.PasswordHash, password)
	}
	return password == h.cfg.Admin.Password
}
