package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/warit-s/acadpay-api/internal/models"
	appErrors "github.com/warit-s/acadpay-api/pkg/errors"
)

type mockAuthRepo struct {
	users map[string]*models.UserRecord
}

func (m *mockAuthRepo) FindByUsername(ctx context.Context, username string) (*models.UserRecord, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (m *mockAuthRepo) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	user, ok := m.users[username]
	if !ok {
		return sql.ErrNoRows
	}
	user.PasswordHash = passwordHash
	return nil
}

func authTestConfig() AuthConfig {
	return AuthConfig{Secret: "secret", Expiration: time.Hour, Issuer: "acadpay-api"}
}

func newAuthRepoWithUser(t *testing.T, username, password string, role models.UserRole) *mockAuthRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &mockAuthRepo{users: map[string]*models.UserRecord{
		username: {Username: username, PasswordHash: string(hash), FullName: "Somchai W.", Role: role},
	}}
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	repo := newAuthRepoWithUser(t, "somchai", "password", models.RoleApplicant)
	svc := NewAuthService(repo, nil, nil, authTestConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "somchai", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	assert.Equal(t, "somchai", res.User.Username)
	assert.Equal(t, models.RoleApplicant, res.User.Role)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := newAuthRepoWithUser(t, "somchai", "password", models.RoleApplicant)
	svc := NewAuthService(repo, nil, nil, authTestConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "somchai", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(&mockAuthRepo{users: map[string]*models.UserRecord{}}, nil, nil, authTestConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "password"})
	require.Error(t, err)
	// Unknown usernames and wrong passwords are indistinguishable to the caller.
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateToken(t *testing.T) {
	repo := newAuthRepoWithUser(t, "somchai", "password", models.RoleCommittee)
	svc := NewAuthService(repo, nil, nil, authTestConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "somchai", Password: "password"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "somchai", claims.Username)
	assert.Equal(t, models.RoleCommittee, claims.Role)
}

func TestAuthServiceValidateTokenWrongSecret(t *testing.T) {
	repo := newAuthRepoWithUser(t, "somchai", "password", models.RoleApplicant)
	issuer := NewAuthService(repo, nil, nil, authTestConfig())
	verifier := NewAuthService(repo, nil, nil, AuthConfig{Secret: "other", Expiration: time.Hour})

	res, err := issuer.Login(context.Background(), models.LoginRequest{Username: "somchai", Password: "password"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(res.AccessToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceChangePassword(t *testing.T) {
	repo := newAuthRepoWithUser(t, "somchai", "oldpassword", models.RoleApplicant)
	svc := NewAuthService(repo, nil, nil, authTestConfig())

	err := svc.ChangePassword(context.Background(), "somchai", models.ChangePasswordRequest{
		OldPassword: "oldpassword",
		NewPassword: "newpassword",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), models.LoginRequest{Username: "somchai", Password: "newpassword"})
	require.NoError(t, err)
}

func TestAuthServiceChangePasswordWrongCurrent(t *testing.T) {
	repo := newAuthRepoWithUser(t, "somchai", "oldpassword", models.RoleApplicant)
	svc := NewAuthService(repo, nil, nil, authTestConfig())

	err := svc.ChangePassword(context.Background(), "somchai", models.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newpassword",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}
