package repository

import (
	"context"
	"database/sql"

	"github.com/warit-s/acadpay-api/internal/models"
)

const requestsCollection = "requests"

// RequestRepository provides access to the requests collection.
type RequestRepository struct {
	store *Store
}

// NewRequestRepository creates a new instance of RequestRepository.
func NewRequestRepository(store *Store) *RequestRepository {
	return &RequestRepository{store: store}
}

// List returns every stored request.
func (r *RequestRepository) List(ctx context.Context) ([]models.Request, error) {
	var requests []models.Request
	if err := r.store.Load(requestsCollection, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// FindByID returns one request, or sql.ErrNoRows when absent.
func (r *RequestRepository) FindByID(ctx context.Context, id string) (*models.Request, error) {
	var requests []models.Request
	if err := r.store.Load(requestsCollection, &requests); err != nil {
		return nil, err
	}
	for i := range requests {
		if requests[i].ID == id {
			return &requests[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

// Upsert inserts the request or replaces the record with the same id, as a
// single serialized read-modify-write.
func (r *RequestRepository) Upsert(ctx context.Context, req *models.Request) error {
	var requests []models.Request
	return r.store.mutate(requestsCollection, &requests, func() (interface{}, error) {
		for i := range requests {
			if requests[i].ID == req.ID {
				requests[i] = *req
				return requests, nil
			}
		}
		return append(requests, *req), nil
	})
}

// Update applies fn to the stored record under the store lock. fn returning
// an error aborts without writing. A missing id yields sql.ErrNoRows.
func (r *RequestRepository) Update(ctx context.Context, id string, fn func(*models.Request) error) (*models.Request, error) {
	var requests []models.Request
	var updated *models.Request
	err := r.store.mutate(requestsCollection, &requests, func() (interface{}, error) {
		for i := range requests {
			if requests[i].ID == id {
				if err := fn(&requests[i]); err != nil {
					return nil, err
				}
				updated = &requests[i]
				return requests, nil
			}
		}
		return nil, sql.ErrNoRows
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
