package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warit-s/acadpay-api/internal/service"
	"github.com/warit-s/acadpay-api/pkg/response"
)

type exportService interface {
	RequestPDF(ctx context.Context, actor service.Actor, id string) ([]byte, string, error)
	DashboardCSV(ctx context.Context, actor service.Actor) ([]byte, string, error)
}

// ExportHandler serves downloadable renderings of requests.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// RequestPDF godoc
// @Summary Download a request decision summary as PDF
// @Tags Export
// @Produce application/pdf
// @Param id path string true "Request ID"
// @Success 200 {file} binary
// @Router /requests/{id}/export [get]
func (h *ExportHandler) RequestPDF(c *gin.Context) {
	actor := actorFromContext(c)
	pdf, filename, err := h.service.RequestPDF(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// DashboardCSV godoc
// @Summary Download the dashboard listing as CSV
// @Tags Export
// @Produce text/csv
// @Success 200 {file} binary
// @Router /dashboard/export [get]
func (h *ExportHandler) DashboardCSV(c *gin.Context) {
	actor := actorFromContext(c)
	csv, filename, err := h.service.DashboardCSV(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", csv)
}
