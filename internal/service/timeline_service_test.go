package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warit-s/acadpay-api/internal/models"
	appErrors "github.com/warit-s/acadpay-api/pkg/errors"
)

type mockTimelineStore struct {
	timeline *models.Timeline
}

func (m *mockTimelineStore) Get(ctx context.Context) (*models.Timeline, error) {
	return m.timeline, nil
}

func (m *mockTimelineStore) Save(ctx context.Context, timeline *models.Timeline) error {
	m.timeline = timeline
	return nil
}

func TestTimelineServiceUpdate(t *testing.T) {
	store := &mockTimelineStore{}
	svc := NewTimelineService(store, nil, nil)

	timeline, err := svc.Update(context.Background(), UpdateTimelineRequest{
		FiscalYear: "2569",
		StartDate:  "01/10/2025",
		EndDate:    "30/09/2026",
	})
	require.NoError(t, err)
	assert.Equal(t, "2569", timeline.FiscalYear)
	assert.Equal(t, timeline, store.timeline)
}

func TestTimelineServiceUpdateBadDates(t *testing.T) {
	svc := NewTimelineService(&mockTimelineStore{}, nil, nil)

	cases := []UpdateTimelineRequest{
		{FiscalYear: "2569", StartDate: "2025-10-01", EndDate: "30/09/2026"},
		{FiscalYear: "2569", StartDate: "01/10/2025", EndDate: "September 30"},
		{FiscalYear: "2569", StartDate: "30/09/2026", EndDate: "01/10/2025"},
	}
	for _, req := range cases {
		_, err := svc.Update(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestTimelineServiceGetUnset(t *testing.T) {
	svc := NewTimelineService(&mockTimelineStore{}, nil, nil)

	timeline, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, timeline)
}
