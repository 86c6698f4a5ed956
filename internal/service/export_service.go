package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/warit-s/acadpay-api/internal/models"
	appErrors "github.com/warit-s/acadpay-api/pkg/errors"
	"github.com/warit-s/acadpay-api/pkg/export"
)

type requestReader interface {
	Get(ctx context.Context, actor Actor, id string) (*models.Request, error)
}

type dashboardLister interface {
	ListForActor(ctx context.Context, actor Actor) ([]models.Request, error)
}

// ExportService renders requests into downloadable documents.
type ExportService struct {
	requests  requestReader
	dashboard dashboardLister
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(requests requestReader, dashboard dashboardLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{requests: requests, dashboard: dashboard, logger: logger}
}

// RequestPDF renders a decision summary for one request. Visibility rules
// are the same as for reading the request.
func (s *ExportService) RequestPDF(ctx context.Context, actor Actor, id string) ([]byte, string, error) {
	req, err := s.requests.Get(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}

	data := export.Dataset{
		Headers: []string{"Work", "Level", "Score", "Weight", "Net"},
		Rows:    make([]map[string]string, 0, len(req.Works)),
	}
	for _, w := range req.Works {
		net := fmt.Sprintf("%.3f", w.NetScore)
		if w.CalcError {
			net = "not counted"
		}
		data.Rows = append(data.Rows, map[string]string{
			"Work":   w.Type,
			"Level":  workLevel(w.Details),
			"Score":  fmt.Sprintf("%.2f", w.CalculatedScore),
			"Weight": fmt.Sprintf("%.1f", w.CalculatedWeight),
			"Net":    net,
		})
	}

	summary := []string{
		fmt.Sprintf("Request %s, fiscal year %s", req.ID, req.FiscalYear),
		fmt.Sprintf("Applicant: %s (%s)", req.ApplicantName, req.ApplicantInfo.AcademicPosition),
		fmt.Sprintf("Status: %s", req.Status),
		fmt.Sprintf("Total score: %.3f", req.Score),
		fmt.Sprintf("Computed compensation: %.0f", req.TotalCompensation),
	}
	if req.ApprovedAmount != "" {
		summary = append(summary, fmt.Sprintf("Approved amount: %s", req.ApprovedAmount))
	}

	pdf, err := export.RenderPDF(data, "compensation request", summary)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return pdf, fmt.Sprintf("%s.pdf", req.ID), nil
}

func workLevel(details map[string]string) string {
	for _, key := range []string{"database", "publish_type", "type"} {
		if details[key] != "" {
			return details[key]
		}
	}
	return ""
}

// DashboardCSV renders the actor's dashboard listing as CSV.
func (s *ExportService) DashboardCSV(ctx context.Context, actor Actor) ([]byte, string, error) {
	requests, err := s.dashboard.ListForActor(ctx, actor)
	if err != nil {
		return nil, "", err
	}

	data := export.Dataset{
		Headers: []string{"ID", "Applicant", "Fiscal Year", "Status", "Score", "Compensation", "Date"},
		Rows:    make([]map[string]string, 0, len(requests)),
	}
	for _, req := range requests {
		data.Rows = append(data.Rows, map[string]string{
			"ID":           req.ID,
			"Applicant":    req.ApplicantName,
			"Fiscal Year":  req.FiscalYear,
			"Status":       string(req.Status),
			"Score":        fmt.Sprintf("%.3f", req.Score),
			"Compensation": fmt.Sprintf("%.0f", req.TotalCompensation),
			"Date":         req.Date,
		})
	}

	csv, err := export.RenderCSV(data)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return csv, "requests.csv", nil
}
