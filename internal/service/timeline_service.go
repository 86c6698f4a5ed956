package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/warit-s/acadpay-api/internal/models"
	appErrors "github.com/warit-s/acadpay-api/pkg/errors"
)

type timelineRepository interface {
	Get(ctx context.Context) (*models.Timeline, error)
	Save(ctx context.Context, timeline *models.Timeline) error
}

// UpdateTimelineRequest replaces the submission-window config.
type UpdateTimelineRequest struct {
	FiscalYear string `json:"fiscal_year" validate:"required"`
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
}

// TimelineService manages the submission-window singleton.
type TimelineService struct {
	repo      timelineRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimelineService constructs a TimelineService.
func NewTimelineService(repo timelineRepository, validate *validator.Validate, logger *zap.Logger) *TimelineService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimelineService{repo: repo, validator: validate, logger: logger}
}

// Get returns the current timeline config; nil means "always open".
func (s *TimelineService) Get(ctx context.Context) (*models.Timeline, error) {
	timeline, err := s.repo.Get(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timeline")
	}
	return timeline, nil
}

// Update validates the dd/mm/yyyy bounds and replaces the config.
func (s *TimelineService) Update(ctx context.Context, req UpdateTimelineRequest) (*models.Timeline, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timeline payload")
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date must be dd/mm/yyyy")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must be dd/mm/yyyy")
	}
	if end.Before(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_date precedes start_date")
	}

	timeline := &models.Timeline{
		FiscalYear: req.FiscalYear,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	if err := s.repo.Save(ctx, timeline); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save timeline")
	}

	s.logger.Info("timeline updated",
		zap.String("fiscal_year", timeline.FiscalYear),
		zap.String("start", timeline.StartDate),
		zap.String("end", timeline.EndDate))

	return timeline, nil
}
