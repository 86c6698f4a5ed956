package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/warit-s/acadpay-api/internal/models"
	appErrors "github.com/warit-s/acadpay-api/pkg/errors"
)

type requestLister interface {
	List(ctx context.Context) ([]models.Request, error)
}

// Statuses visible on the administration dashboard: everything an
// administrator can act on or has already routed, i.e. all states except
// drafts and records returned for revision.
var administrationStatuses = map[models.RequestStatus]struct{}{
	models.StatusSubmitted:        {},
	models.StatusDuplicate:        {},
	models.StatusVerified:         {},
	models.StatusPendingReview:    {},
	models.StatusPendingCommittee: {},
	models.StatusApproved:         {},
	models.StatusRejected:         {},
	models.StatusAppealPending:    {},
}

// FilterForRole is the pure dashboard filter keyed by role. Applicants see
// their own requests, research sees the review queue, committee sees its
// docket plus appeals, anything else sees nothing.
func FilterForRole(requests []models.Request, actor Actor) []models.Request {
	visible := make([]models.Request, 0, len(requests))
	for _, req := range requests {
		switch actor.Role {
		case models.RoleApplicant:
			if req.Applicant == actor.Username {
				visible = append(visible, req)
			}
		case models.RoleAdministration:
			if _, ok := administrationStatuses[req.Status]; ok {
				visible = append(visible, req)
			}
		case models.RoleResearch:
			if req.Status == models.StatusPendingReview {
				visible = append(visible, req)
			}
		case models.RoleCommittee:
			if req.Status == models.StatusPendingCommittee || req.Status == models.StatusAppealPending {
				visible = append(visible, req)
			}
		}
	}
	return visible
}

// DashboardService lists requests visible to an actor, with an optional
// Redis cache in front of the store.
type DashboardService struct {
	repo    requestLister
	cache   *redis.Client
	ttl     time.Duration
	metrics *MetricsService
	logger  *zap.Logger
}

// NewDashboardService constructs a DashboardService. A nil cache client
// disables caching.
func NewDashboardService(repo requestLister, cache *redis.Client, ttl time.Duration, metrics *MetricsService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, cache: cache, ttl: ttl, metrics: metrics, logger: logger}
}

// ListForActor returns the actor's dashboard view.
func (s *DashboardService) ListForActor(ctx context.Context, actor Actor) ([]models.Request, error) {
	cacheKey := fmt.Sprintf("dashboard:%s:%s", actor.Role, actor.Username)

	if s.cache != nil {
		start := time.Now()
		raw, err := s.cache.Get(ctx, cacheKey).Bytes()
		hit := err == nil
		s.metrics.RecordCacheOperation(hit, time.Since(start))
		if hit {
			var cached []models.Request
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	requests, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list requests")
	}
	visible := FilterForRole(requests, actor)

	if s.cache != nil {
		if raw, err := json.Marshal(visible); err == nil {
			start := time.Now()
			if err := s.cache.Set(ctx, cacheKey, raw, s.ttl).Err(); err != nil {
				s.logger.Warn("dashboard cache write failed", zap.Error(err))
			}
			s.metrics.ObserveCacheWrite(time.Since(start))
		}
	}

	return visible, nil
}

// Invalidate drops every cached dashboard view. Called after any workflow
// mutation; the full flush keeps reviewer queues consistent without
// tracking which roles a status change touches.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	iter := s.cache.Scan(ctx, 0, "dashboard:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("dashboard cache scan failed", zap.Error(err))
	}
}
