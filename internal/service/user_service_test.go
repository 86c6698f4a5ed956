package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/warit-s/acadpay-api/internal/models"
	appErrors "github.com/warit-s/acadpay-api/pkg/errors"
)

type mockUserAdminRepo struct {
	users map[string]*models.UserRecord
}

func newMockUserAdminRepo(users ...*models.UserRecord) *mockUserAdminRepo {
	m := &mockUserAdminRepo{users: make(map[string]*models.UserRecord)}
	for _, user := range users {
		copied := *user
		m.users[user.Username] = &copied
	}
	return m
}

func (m *mockUserAdminRepo) List(ctx context.Context) ([]models.UserRecord, error) {
	out := make([]models.UserRecord, 0, len(m.users))
	for _, user := range m.users {
		out = append(out, *user)
	}
	return out, nil
}

func (m *mockUserAdminRepo) FindByUsername(ctx context.Context, username string) (*models.UserRecord, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserAdminRepo) Create(ctx context.Context, user *models.UserRecord) error {
	copied := *user
	m.users[user.Username] = &copied
	return nil
}

func (m *mockUserAdminRepo) Delete(ctx context.Context, username string) error {
	if _, ok := m.users[username]; !ok {
		return sql.ErrNoRows
	}
	delete(m.users, username)
	return nil
}

func (m *mockUserAdminRepo) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	user, ok := m.users[username]
	if !ok {
		return sql.ErrNoRows
	}
	user.PasswordHash = passwordHash
	return nil
}

func TestUserServiceCreate(t *testing.T) {
	repo := newMockUserAdminRepo()
	svc := NewUserService(repo, nil, nil)

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Username:         "somchai",
		Password:         "password",
		FullName:         "Somchai W.",
		Role:             models.RoleApplicant,
		AcademicPosition: "Assistant Professor",
	})
	require.NoError(t, err)
	assert.Equal(t, "somchai", user.Username)
	assert.Equal(t, models.RoleApplicant, user.Role)

	stored := repo.users["somchai"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password")))
}

func TestUserServiceCreateDuplicate(t *testing.T) {
	repo := newMockUserAdminRepo(&models.UserRecord{Username: "somchai"})
	svc := NewUserService(repo, nil, nil)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "somchai",
		Password: "password",
		FullName: "Somchai W.",
		Role:     models.RoleApplicant,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestUserServiceCreateInvalidRole(t *testing.T) {
	svc := NewUserService(newMockUserAdminRepo(), nil, nil)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "somchai",
		Password: "password",
		FullName: "Somchai W.",
		Role:     "SUPERUSER",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUserServiceListRedactsCredentials(t *testing.T) {
	repo := newMockUserAdminRepo(&models.UserRecord{Username: "somchai", PasswordHash: "hash", Role: models.RoleApplicant})
	svc := NewUserService(repo, nil, nil)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "somchai", users[0].Username)
}

func TestUserServiceDeleteSelf(t *testing.T) {
	repo := newMockUserAdminRepo(&models.UserRecord{Username: "admin1", Role: models.RoleAdmin})
	svc := NewUserService(repo, nil, nil)

	err := svc.Delete(context.Background(), Actor{Username: "admin1", Role: models.RoleAdmin}, "admin1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestUserServiceDelete(t *testing.T) {
	repo := newMockUserAdminRepo(
		&models.UserRecord{Username: "admin1", Role: models.RoleAdmin},
		&models.UserRecord{Username: "somchai", Role: models.RoleApplicant},
	)
	svc := NewUserService(repo, nil, nil)

	err := svc.Delete(context.Background(), Actor{Username: "admin1", Role: models.RoleAdmin}, "somchai")
	require.NoError(t, err)
	assert.NotContains(t, repo.users, "somchai")
}

func TestUserServiceDeleteMissing(t *testing.T) {
	svc := NewUserService(newMockUserAdminRepo(), nil, nil)

	err := svc.Delete(context.Background(), Actor{Username: "admin1"}, "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestUserServiceResetPassword(t *testing.T) {
	repo := newMockUserAdminRepo(&models.UserRecord{Username: "somchai", PasswordHash: "old"})
	svc := NewUserService(repo, nil, nil)

	err := svc.ResetPassword(context.Background(), "somchai", ResetPasswordRequest{NewPassword: "newpassword"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users["somchai"].PasswordHash), []byte("newpassword")))
}

func TestUserServiceResetPasswordMissing(t *testing.T) {
	svc := NewUserService(newMockUserAdminRepo(), nil, nil)

	err := svc.ResetPassword(context.Background(), "ghost", ResetPasswordRequest{NewPassword: "newpassword"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
