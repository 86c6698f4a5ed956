package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warit-s/acadpay-api/internal/models"
	"github.com/warit-s/acadpay-api/internal/service"
	"github.com/warit-s/acadpay-api/pkg/response"
)

type dashboardService interface {
	ListForActor(ctx context.Context, actor service.Actor) ([]models.Request, error)
}

// DashboardHandler exposes the role-filtered request listing.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler builds a new handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// List godoc
// @Summary List requests visible to the caller's role
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) List(c *gin.Context) {
	requests, err := h.service.ListForActor(c.Request.Context(), actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, map[string]interface{}{"count": len(requests)})
}
