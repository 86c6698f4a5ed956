package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warit-s/acadpay-api/internal/models"
	"github.com/warit-s/acadpay-api/internal/service"
	appErrors "github.com/warit-s/acadpay-api/pkg/errors"
	"github.com/warit-s/acadpay-api/pkg/response"
)

type timelineService interface {
	Get(ctx context.Context) (*models.Timeline, error)
	Update(ctx context.Context, req service.UpdateTimelineRequest) (*models.Timeline, error)
}

// TimelineHandler exposes the submission-window config endpoints.
type TimelineHandler struct {
	service timelineService
}

// NewTimelineHandler builds a new handler.
func NewTimelineHandler(service timelineService) *TimelineHandler {
	return &TimelineHandler{service: service}
}

// Get godoc
// @Summary Get the submission window config
// @Tags Timeline
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timeline [get]
func (h *TimelineHandler) Get(c *gin.Context) {
	timeline, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timeline)
}

// Update godoc
// @Summary Replace the submission window config
// @Tags Timeline
// @Accept json
// @Produce json
// @Param payload body service.UpdateTimelineRequest true "Timeline payload"
// @Success 200 {object} response.Envelope
// @Router /timeline [put]
func (h *TimelineHandler) Update(c *gin.Context) {
	var req service.UpdateTimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timeline payload"))
		return
	}
	timeline, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timeline)
}
