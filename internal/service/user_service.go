package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/warit-s/acadpay-api/internal/models"
	appErrors "github.com/warit-s/acadpay-api/pkg/errors"
)

type userRepository interface {
	List(ctx context.Context) ([]models.UserRecord, error)
	FindByUsername(ctx context.Context, username string) (*models.UserRecord, error)
	Create(ctx context.Context, user *models.UserRecord) error
	Delete(ctx context.Context, username string) error
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

// CreateUserRequest is the admin payload for adding an account.
type CreateUserRequest struct {
	Username         string          `json:"username" validate:"required"`
	Password         string          `json:"password" validate:"required,min=6"`
	FullName         string          `json:"full_name" validate:"required"`
	Role             models.UserRole `json:"role" validate:"required,oneof=APPLICANT ADMINISTRATION RESEARCH COMMITTEE ADMIN"`
	TitleName        string          `json:"title_name"`
	AcademicPosition string          `json:"academic_position"`
	PositionDate     string          `json:"position_date"`
	PositionNumber   string          `json:"position_number"`
	Department       string          `json:"department"`
	Faculty          string          `json:"faculty"`
}

// ResetPasswordRequest is the admin payload for resetting a password.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// UserService implements admin account management.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// List returns all accounts without credential material.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	users := make([]models.User, len(records))
	for i, r := range records {
		users[i] = r.Public()
	}
	return users, nil
}

// Create adds a new account. Usernames are unique keys.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "username already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check username")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	record := &models.UserRecord{
		Username:         req.Username,
		PasswordHash:     string(hash),
		FullName:         req.FullName,
		Role:             req.Role,
		TitleName:        req.TitleName,
		AcademicPosition: req.AcademicPosition,
		PositionDate:     req.PositionDate,
		PositionNumber:   req.PositionNumber,
		Department:       req.Department,
		Faculty:          req.Faculty,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.logger.Info("user created",
		zap.String("username", record.Username),
		zap.String("role", string(record.Role)))

	public := record.Public()
	return &public, nil
}

// Delete removes an account. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actor Actor, username string) error {
	if username == actor.Username {
		return appErrors.Clone(appErrors.ErrConflict, "cannot delete your own account")
	}
	if _, err := s.repo.FindByUsername(ctx, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check username")
	}
	if err := s.repo.Delete(ctx, username); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete user")
	}
	s.logger.Info("user deleted", zap.String("username", username))
	return nil
}

// ResetPassword sets a new password for any account.
func (s *UserService) ResetPassword(ctx context.Context, username string, req ResetPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid password payload")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	if err := s.repo.UpdatePassword(ctx, username, string(hash)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset password")
	}
	return nil
}
