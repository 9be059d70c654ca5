package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/worldsacross/tutor-viewer/internal/response"
	"github.com/worldsacross/tutor-viewer/internal/service"
)

// HomeHandler serves the landing view and the manual refresh.
type HomeHandler struct {
	homeService *service.HomeService
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(homeService *service.HomeService) *HomeHandler {
	return &HomeHandler{homeService: homeService}
}

// GetHome godoc
// GET /api/v1/home
func (h *HomeHandler) GetHome(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"header":   h.homeService.Header(),
		"sections": h.homeService.Sections(),
	})
}

// Refresh godoc
// POST /api/v1/refresh
// Reloads every collection; each one reports its own outcome.
func (h *HomeHandler) Refresh(c *gin.Context) {
	results := h.homeService.RefreshAll(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{"collections": results})
}
