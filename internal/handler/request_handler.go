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

type requestService interface {
	Save(ctx context.Context, actor service.Actor, payload service.SaveRequestPayload) (*models.Request, error)
	Decide(ctx context.Context, actor service.Actor, id string, payload service.DecisionPayload) (*models.Request, error)
	Appeal(ctx context.Context, actor service.Actor, id string, payload service.AppealPayload) (*models.Request, error)
	Get(ctx context.Context, actor service.Actor, id string) (*models.Request, error)
	TimelineOpen(ctx context.Context) bool
}

type dashboardInvalidator interface {
	Invalidate(ctx context.Context)
}

// RequestHandler exposes the request lifecycle endpoints.
type RequestHandler struct {
	service   requestService
	dashboard dashboardInvalidator
	metrics   *service.MetricsService
}

// NewRequestHandler builds a new handler.
func NewRequestHandler(svc requestService, dashboard dashboardInvalidator, metrics *service.MetricsService) *RequestHandler {
	return &RequestHandler{service: svc, dashboard: dashboard, metrics: metrics}
}

// Save godoc
// @Summary Create or update a request as draft or submission
// @Tags Requests
// @Accept json
// @Produce json
// @Param payload body service.SaveRequestPayload true "Request payload"
// @Success 201 {object} response.Envelope
// @Router /requests [post]
func (h *RequestHandler) Save(c *gin.Context) {
	var payload service.SaveRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid request payload"))
		return
	}
	result, err := h.service.Save(c.Request.Context(), actorFromContext(c), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.afterMutation(c, payload.Action, result)
	response.Created(c, result)
}

// Get godoc
// @Summary Fetch one request
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), actorFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Decide godoc
// @Summary Apply a reviewer action to a request
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body service.DecisionPayload true "Decision payload"
// @Success 200 {object} response.Envelope
// @Router /requests/{id}/decision [post]
func (h *RequestHandler) Decide(c *gin.Context) {
	var payload service.DecisionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid decision payload"))
		return
	}
	result, err := h.service.Decide(c.Request.Context(), actorFromContext(c), c.Param("id"), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.afterMutation(c, payload.Action, result)
	response.JSON(c, http.StatusOK, result)
}

// Appeal godoc
// @Summary Appeal a rejected request
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body service.AppealPayload true "Appeal payload"
// @Success 200 {object} response.Envelope
// @Router /requests/{id}/appeal [post]
func (h *RequestHandler) Appeal(c *gin.Context) {
	var payload service.AppealPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid appeal payload"))
		return
	}
	result, err := h.service.Appeal(c.Request.Context(), actorFromContext(c), c.Param("id"), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.afterMutation(c, "appeal", result)
	response.JSON(c, http.StatusOK, result)
}

// TimelineStatus godoc
// @Summary Report whether the submission window is open
// @Tags Requests
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /requests/timeline-status [get]
func (h *RequestHandler) TimelineStatus(c *gin.Context) {
	open := h.service.TimelineOpen(c.Request.Context())
	response.JSON(c, http.StatusOK, gin.H{"open": open})
}

func (h *RequestHandler) afterMutation(c *gin.Context, action string, req *models.Request) {
	h.metrics.ObserveTransition(action, string(req.Status))
	if h.dashboard != nil {
		h.dashboard.Invalidate(c.Request.Context())
	}
}
