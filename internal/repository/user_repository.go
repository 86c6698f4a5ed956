package repository

import (
	"context"
	"database/sql"

	"github.com/warit-s/acadpay-api/internal/models"
)

const usersCollection = "users"

// UserRepository provides access to the users collection.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// List returns every stored user.
func (r *UserRepository) List(ctx context.Context) ([]models.UserRecord, error) {
	var users []models.UserRecord
	if err := r.store.Load(usersCollection, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByUsername returns a user by unique username, or sql.ErrNoRows.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.UserRecord, error) {
	var users []models.UserRecord
	if err := r.store.Load(usersCollection, &users); err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

// Create appends a new user. Username uniqueness is the caller's concern;
// the repository only guards the write cycle.
func (r *UserRepository) Create(ctx context.Context, user *models.UserRecord) error {
	var users []models.UserRecord
	return r.store.mutate(usersCollection, &users, func() (interface{}, error) {
		return append(users, *user), nil
	})
}

// Delete removes a user by username. Deleting an absent user is a no-op.
func (r *UserRepository) Delete(ctx context.Context, username string) error {
	var users []models.UserRecord
	return r.store.mutate(usersCollection, &users, func() (interface{}, error) {
		kept := users[:0]
		for _, u := range users {
			if u.Username != username {
				kept = append(kept, u)
			}
		}
		return kept, nil
	})
}

// UpdatePassword replaces the stored password hash for a user.
func (r *UserRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	var users []models.UserRecord
	return r.store.mutate(usersCollection, &users, func() (interface{}, error) {
		for i := range users {
			if users[i].Username == username {
				users[i].PasswordHash = passwordHash
				return users, nil
			}
		}
		return nil, sql.ErrNoRows
	})
}
