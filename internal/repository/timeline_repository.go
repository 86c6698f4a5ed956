package repository

import (
	"context"

	"github.com/warit-s/acadpay-api/internal/models"
)

const timelineConfig = "timeline"

// TimelineRepository manages the singleton submission-window config.
type TimelineRepository struct {
	store *Store
}

// NewTimelineRepository creates a new instance of TimelineRepository.
func NewTimelineRepository(store *Store) *TimelineRepository {
	return &TimelineRepository{store: store}
}

// Get returns the configured timeline, or nil when none is configured.
func (r *TimelineRepository) Get(ctx context.Context) (*models.Timeline, error) {
	var timeline models.Timeline
	r.store.LoadConfig(timelineConfig, &timeline)
	if timeline.StartDate == "" && timeline.EndDate == "" {
		return nil, nil
	}
	return &timeline, nil
}

// Save replaces the timeline config.
func (r *TimelineRepository) Save(ctx context.Context, timeline *models.Timeline) error {
	return r.store.SaveConfig(timelineConfig, timeline)
}
