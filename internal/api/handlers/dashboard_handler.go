package handlers

import (
	"net/http"

	"github.com/careloop/backend/internal/api/middleware"
	"github.com/careloop/backend/internal/domain/entities"
)

// DashboardService defines the dashboard operation used by the handler.
type DashboardService interface {
	Snapshot(userID string) *entities.DashboardSnapshot
}

// DashboardHandler serves the per-user health dashboard.
type DashboardHandler struct {
	service DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	respondWithJSON(w, http.StatusOK, h.service.Snapshot(userID))
}
