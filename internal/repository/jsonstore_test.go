package repository

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warit-s/acadpay-api/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	return store
}

func TestStoreMissingCollectionIsEmpty(t *testing.T) {
	store := newTestStore(t)

	var requests []models.Request
	require.NoError(t, store.Load("requests", &requests))
	assert.Empty(t, requests)

	// The lazy-created file must exist afterwards.
	_, err := os.Stat(filepath.Join(store.dir, "requests.json"))
	assert.NoError(t, err)
}

func TestStoreCorruptCollectionIsEmpty(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(store.dir, "requests.json"), []byte("{not json"), 0o644))

	var requests []models.Request
	require.NoError(t, store.Load("requests", &requests))
	assert.Empty(t, requests)
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	in := []models.Request{
		{
			ID:        "REQ-1",
			Applicant: "somchai",
			Status:    models.StatusRejected,
			Works: []models.WorkItem{
				{
					Type:     "research",
					Title:    "A study",
					Details:  map[string]string{"database": "scopus_q1_q2", "contribution": "first"},
					NetScore: 1.25,
				},
			},
			Appeal: &models.Appeal{Reason: "new evidence", Status: models.AppealAwaiting},
			Score:  1.25,
		},
	}
	require.NoError(t, store.Save("requests", in))

	var out []models.Request
	require.NoError(t, store.Load("requests", &out))
	assert.Equal(t, in, out)
}

func TestStoreConfigRoundTrip(t *testing.T) {
	store := newTestStore(t)

	var missing models.Timeline
	store.LoadConfig("timeline", &missing)
	assert.Equal(t, models.Timeline{}, missing)

	in := models.Timeline{FiscalYear: "2569", StartDate: "01/10/2025", EndDate: "30/09/2026"}
	require.NoError(t, store.SaveConfig("timeline", in))

	var out models.Timeline
	store.LoadConfig("timeline", &out)
	assert.Equal(t, in, out)
}

func TestRequestRepositoryUpsert(t *testing.T) {
	repo := NewRequestRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.Request{ID: "REQ-1", Status: models.StatusDraft}))
	require.NoError(t, repo.Upsert(ctx, &models.Request{ID: "REQ-2", Status: models.StatusSubmitted}))

	// Same id replaces in place.
	require.NoError(t, repo.Upsert(ctx, &models.Request{ID: "REQ-1", Status: models.StatusSubmitted}))

	requests, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, models.StatusSubmitted, requests[0].Status)

	found, err := repo.FindByID(ctx, "REQ-2")
	require.NoError(t, err)
	assert.Equal(t, "REQ-2", found.ID)
}

func TestRequestRepositoryFindMissing(t *testing.T) {
	repo := NewRequestRepository(newTestStore(t))

	_, err := repo.FindByID(context.Background(), "REQ-404")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRequestRepositoryUpdate(t *testing.T) {
	repo := NewRequestRepository(newTestStore(t))
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, &models.Request{ID: "REQ-1", Status: models.StatusSubmitted}))

	updated, err := repo.Update(ctx, "REQ-1", func(req *models.Request) error {
		req.Status = models.StatusPendingReview
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingReview, updated.Status)

	stored, err := repo.FindByID(ctx, "REQ-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingReview, stored.Status)
}

func TestRequestRepositoryUpdateAborts(t *testing.T) {
	repo := NewRequestRepository(newTestStore(t))
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, &models.Request{ID: "REQ-1", Status: models.StatusSubmitted}))

	boom := assert.AnError
	_, err := repo.Update(ctx, "REQ-1", func(req *models.Request) error {
		req.Status = models.StatusApproved
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// An aborted mutation must not be written.
	stored, err := repo.FindByID(ctx, "REQ-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, stored.Status)
}

func TestRequestRepositoryUpdateMissing(t *testing.T) {
	repo := NewRequestRepository(newTestStore(t))

	_, err := repo.Update(context.Background(), "REQ-404", func(req *models.Request) error { return nil })
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepositoryLifecycle(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.UserRecord{Username: "somchai", PasswordHash: "h1", Role: models.RoleApplicant}))
	require.NoError(t, repo.Create(ctx, &models.UserRecord{Username: "admin1", PasswordHash: "h2", Role: models.RoleAdmin}))

	found, err := repo.FindByUsername(ctx, "somchai")
	require.NoError(t, err)
	assert.Equal(t, models.RoleApplicant, found.Role)

	require.NoError(t, repo.UpdatePassword(ctx, "somchai", "h3"))
	found, err = repo.FindByUsername(ctx, "somchai")
	require.NoError(t, err)
	assert.Equal(t, "h3", found.PasswordHash)

	require.NoError(t, repo.Delete(ctx, "somchai"))
	_, err = repo.FindByUsername(ctx, "somchai")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestTimelineRepositoryUnset(t *testing.T) {
	repo := NewTimelineRepository(newTestStore(t))

	timeline, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, timeline)
}

func TestTimelineRepositorySaveAndGet(t *testing.T) {
	repo := NewTimelineRepository(newTestStore(t))
	ctx := context.Background()

	in := &models.Timeline{FiscalYear: "2569", StartDate: "01/10/2025", EndDate: "30/09/2026"}
	require.NoError(t, repo.Save(ctx, in))

	out, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
