package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/warit-s/acadpay-api/internal/models"
	"github.com/warit-s/acadpay-api/internal/scoring"
	appErrors "github.com/warit-s/acadpay-api/pkg/errors"
)

const (
	dateTimeLayout = "02/01/2006 15:04"
	dateLayout     = "02/01/2006"

	// Appeal cutoff in calendar days from the rejection date. Day 7 is
	// still appealable, day 8 is not.
	appealWindowDays = 7

	duplicateComment = "This work has already been claimed for compensation"
)

type requestRepository interface {
	List(ctx context.Context) ([]models.Request, error)
	FindByID(ctx context.Context, id string) (*models.Request, error)
	Upsert(ctx context.Context, req *models.Request) error
	Update(ctx context.Context, id string, fn func(*models.Request) error) (*models.Request, error)
}

type applicantReader interface {
	FindByUsername(ctx context.Context, username string) (*models.UserRecord, error)
}

type timelineReader interface {
	Get(ctx context.Context) (*models.Timeline, error)
}

// Actor is the explicit caller context every workflow operation is gated
// on. Handlers build it from verified JWT claims; nothing here relies on
// ambient session state.
type Actor struct {
	Username string
	FullName string
	Role     models.UserRole
}

// WorkPayload is one submitted work item before scoring.
type WorkPayload struct {
	Type    string            `json:"type" validate:"required"`
	Title   string            `json:"title"`
	Details map[string]string `json:"details"`
}

// SaveRequestPayload creates or updates a request. Action distinguishes a
// draft save from a real submission.
type SaveRequestPayload struct {
	ID               string        `json:"id"`
	Action           string        `json:"action" validate:"required,oneof=draft submit"`
	FiscalYear       string        `json:"fiscal_year"`
	AcademicPosition string        `json:"academic_position"`
	Works            []WorkPayload `json:"works" validate:"dive"`
	Certify          bool          `json:"certify"`
}

// DecisionPayload carries a reviewer action against a pending request.
type DecisionPayload struct {
	Action  string `json:"action" validate:"required,oneof=return pass to_committee reject duplicate verify approve"`
	Comment string `json:"comment"`
	Amount  string `json:"amount"`
}

// AppealPayload opens an appeal against a rejected request.
type AppealPayload struct {
	Reason   string `json:"reason" validate:"required"`
	Evidence string `json:"evidence"`
}

// RequestService owns the request lifecycle: scoring on save, the role and
// status gated transition table, and the appeal window.
type RequestService struct {
	repo      requestRepository
	users     applicantReader
	timeline  timelineReader
	validator *validator.Validate
	logger    *zap.Logger

	// now is the injected time source for window checks and date stamps.
	now func() time.Time
}

// NewRequestService constructs a RequestService.
func NewRequestService(repo requestRepository, users applicantReader, timeline timelineReader, validate *validator.Validate, logger *zap.Logger) *RequestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestService{
		repo:      repo,
		users:     users,
		timeline:  timeline,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *RequestService) WithClock(now func() time.Time) *RequestService {
	s.now = now
	return s
}

// BuddhistFiscalYear returns the Buddhist-era fiscal year for a date.
func BuddhistFiscalYear(t time.Time) int {
	return t.Year() + 543
}

// Save creates a request or re-saves an editable one, re-scoring the work
// list and refreshing the applicant snapshot each time. A submit action is
// blocked entirely when the timeline window is closed.
func (s *RequestService) Save(ctx context.Context, actor Actor, payload SaveRequestPayload) (*models.Request, error) {
	if actor.Role != models.RoleApplicant {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only applicants may file requests")
	}
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload")
	}

	now := s.now()
	open := s.timelineOpen(ctx, now)
	submit := payload.Action == "submit"
	if submit && !open {
		return nil, appErrors.Clone(appErrors.ErrTimelineClosed, "")
	}

	profile, err := s.users.FindByUsername(ctx, actor.Username)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load applicant profile")
	}
	if profile == nil {
		profile = &models.UserRecord{Username: actor.Username, FullName: actor.FullName}
	}

	position := payload.AcademicPosition
	if position == "" {
		position = profile.AcademicPosition
	}

	id := payload.ID
	if id == "" {
		// Timestamp-derived token, sorts lexicographically by creation
		// order.
		id = fmt.Sprintf("REQ-%s", now.Format("20060102150405"))
	} else {
		existing, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load request")
		}
		if existing.Applicant != actor.Username {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "request belongs to another applicant")
		}
		if existing.Status != models.StatusDraft && existing.Status != models.StatusReturned {
			return nil, appErrors.Clone(appErrors.ErrNotPermitted, "request is no longer editable")
		}
	}

	works := make([]models.WorkItem, len(payload.Works))
	for i, w := range payload.Works {
		works[i] = models.WorkItem{Type: w.Type, Title: w.Title, Details: w.Details}
	}
	scored, total, compensation := scoring.ComputeTotals(works, position)

	fiscalYear := payload.FiscalYear
	if fiscalYear == "" {
		fiscalYear = strconv.Itoa(BuddhistFiscalYear(now))
	}

	status := models.StatusDraft
	if submit {
		status = models.StatusSubmitted
	}
	timelineStatus := models.TimelineOnTime
	if !open {
		timelineStatus = models.TimelineLate
	}

	record := &models.Request{
		ID:            id,
		Applicant:     actor.Username,
		ApplicantName: profile.FullName,
		ApplicantInfo: models.ApplicantInfo{
			TitleName:        profile.TitleName,
			AcademicPosition: position,
			PositionDate:     profile.PositionDate,
			PositionNumber:   profile.PositionNumber,
			Department:       profile.Department,
			Faculty:          profile.Faculty,
		},
		FiscalYear:        fiscalYear,
		Works:             scored,
		Date:              now.Format(dateTimeLayout),
		Status:            status,
		Score:             total,
		TotalCompensation: compensation,
		TimelineStatus:    timelineStatus,
		Certify:           payload.Certify,
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist request")
	}

	s.logger.Info("request saved",
		zap.String("request_id", record.ID),
		zap.String("applicant", record.Applicant),
		zap.String("status", string(record.Status)),
		zap.Float64("score", record.Score),
		zap.Float64("compensation", record.TotalCompensation))

	return record, nil
}

// Decide applies a reviewer action. Any (status, role, action) tuple outside
// the transition table fails with ErrNotPermitted and leaves the record
// untouched.
func (s *RequestService) Decide(ctx context.Context, actor Actor, id string, payload DecisionPayload) (*models.Request, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid decision payload")
	}

	updated, err := s.repo.Update(ctx, id, func(req *models.Request) error {
		return s.applyDecision(req, actor, payload)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update request")
	}

	s.logger.Info("request transitioned",
		zap.String("request_id", updated.ID),
		zap.String("actor", actor.Username),
		zap.String("role", string(actor.Role)),
		zap.String("action", payload.Action),
		zap.String("status", string(updated.Status)))

	return updated, nil
}

func (s *RequestService) applyDecision(req *models.Request, actor Actor, payload DecisionPayload) error {
	switch {
	case actor.Role == models.RoleAdministration && statusIn(req.Status, models.StatusSubmitted, models.StatusVerified, models.StatusDuplicate):
		switch payload.Action {
		case "return":
			req.Status = models.StatusReturned
			req.Comment = payload.Comment
			return nil
		case "pass":
			req.Status = models.StatusPendingReview
			return nil
		case "to_committee":
			req.Status = models.StatusPendingCommittee
			return nil
		case "reject":
			s.reject(req, payload.Comment)
			return nil
		}

	case actor.Role == models.RoleResearch && req.Status == models.StatusPendingReview:
		switch payload.Action {
		case "duplicate":
			// Flags the work back to administration; not a terminal
			// rejection, so no rejection date.
			req.Status = models.StatusDuplicate
			req.Comment = duplicateComment
			return nil
		case "verify":
			req.Status = models.StatusVerified
			return nil
		}

	case actor.Role == models.RoleCommittee && statusIn(req.Status, models.StatusPendingCommittee, models.StatusAppealPending):
		fromAppeal := req.Status == models.StatusAppealPending
		switch payload.Action {
		case "approve":
			req.Status = models.StatusApproved
			req.ApprovedAmount = payload.Amount
			if fromAppeal {
				s.resolveAppeal(req, models.AppealApproved)
			}
			return nil
		case "reject":
			s.reject(req, payload.Comment)
			if fromAppeal {
				s.resolveAppeal(req, models.AppealRejected)
			}
			return nil
		}
	}

	return appErrors.Clone(appErrors.ErrNotPermitted, "")
}

func (s *RequestService) reject(req *models.Request, comment string) {
	req.Status = models.StatusRejected
	req.Comment = comment
	req.RejectionDate = s.now().Format(dateLayout)
}

func (s *RequestService) resolveAppeal(req *models.Request, status models.AppealStatus) {
	if req.Appeal == nil {
		req.Appeal = &models.Appeal{}
	}
	req.Appeal.Status = status
}

// Appeal opens an appeal against a rejected request within the 7-day
// window. A re-appeal overwrites the previous appeal sub-record.
func (s *RequestService) Appeal(ctx context.Context, actor Actor, id string, payload AppealPayload) (*models.Request, error) {
	if actor.Role != models.RoleApplicant {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only applicants may appeal")
	}
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid appeal payload")
	}

	updated, err := s.repo.Update(ctx, id, func(req *models.Request) error {
		if req.Applicant != actor.Username {
			return appErrors.Clone(appErrors.ErrForbidden, "request belongs to another applicant")
		}
		if req.Status != models.StatusRejected {
			return appErrors.Clone(appErrors.ErrRequestNotAppealable, "")
		}
		if !s.appealWindowOpen(req.RejectionDate) {
			return appErrors.Clone(appErrors.ErrAppealWindowClosed, "")
		}
		req.Status = models.StatusAppealPending
		req.Appeal = &models.Appeal{
			Reason:   payload.Reason,
			Evidence: payload.Evidence,
			Date:     s.now().Format(dateTimeLayout),
			Status:   models.AppealAwaiting,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record appeal")
	}

	s.logger.Info("appeal filed",
		zap.String("request_id", updated.ID),
		zap.String("applicant", actor.Username))

	return updated, nil
}

// appealWindowOpen checks the 7-calendar-day cutoff at date-only precision.
// A missing or unparsable rejection date fails open; see DESIGN.md for the
// product question around that behaviour.
func (s *RequestService) appealWindowOpen(rejectionDate string) bool {
	if rejectionDate == "" {
		return true
	}
	rejected, err := time.Parse(dateLayout, rejectionDate)
	if err != nil {
		return true
	}
	days := int(s.now().Sub(rejected).Hours() / 24)
	return days <= appealWindowDays
}

// Get returns one request. Applicants may only read their own records;
// reviewer roles may read any.
func (s *RequestService) Get(ctx context.Context, actor Actor, id string) (*models.Request, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load request")
	}
	if actor.Role == models.RoleApplicant && req.Applicant != actor.Username {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "request belongs to another applicant")
	}
	return req, nil
}

// TimelineOpen reports whether submissions are currently accepted.
func (s *RequestService) TimelineOpen(ctx context.Context) bool {
	return s.timelineOpen(ctx, s.now())
}

// timelineOpen treats an absent or unparsable timeline as "always open";
// misconfiguration must never block legitimate use. Both boundary dates are
// inclusive.
func (s *RequestService) timelineOpen(ctx context.Context, now time.Time) bool {
	timeline, err := s.timeline.Get(ctx)
	if err != nil || timeline == nil {
		return true
	}
	start, startErr := time.Parse(dateLayout, timeline.StartDate)
	end, endErr := time.Parse(dateLayout, timeline.EndDate)
	if startErr != nil || endErr != nil {
		return true
	}
	return !now.Before(start) && now.Before(end.AddDate(0, 0, 1))
}

func statusIn(status models.RequestStatus, set ...models.RequestStatus) bool {
	for _, s := range set {
		if status == s {
			return true
		}
	}
	return false
}
