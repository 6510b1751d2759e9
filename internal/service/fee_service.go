package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
)

type feeRepository interface {
	FindByID(ctx context.Context, id string) (*models.FeeRecord, error)
	Create(ctx context.Context, fee *models.FeeRecord) error
	ListAll(ctx context.Context) ([]models.FeeDetail, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.FeeDetail, error)
	UpdateStatus(ctx context.Context, id string, status models.FeeStatus) error
	Delete(ctx context.Context, id string) error
}

type feeUserRepository interface {
	FindByCustomID(ctx context.Context, customID string) (*models.User, error)
}

// FeeService manages charges raised against students.
type FeeService struct {
	repo      feeRepository
	users     feeUserRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeeService constructs a FeeService instance.
func NewFeeService(repo feeRepository, users feeUserRepository, validate *validator.Validate, logger *zap.Logger) *FeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FeeService{repo: repo, users: users, validator: validate, logger: logger}
}

// Create charges the student identified by their short id. New records
// start pending.
func (s *FeeService) Create(ctx context.Context, req models.FeeCreateRequest) (*models.FeeRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fee payload")
	}

	student, err := s.users.FindByCustomID(ctx, req.StudentCustomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrUnknownUser
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve student")
	}
	if student.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fees can only be charged to students")
	}

	fee := &models.FeeRecord{
		StudentID: student.ID,
		Amount:    req.Amount,
		DueDate:   req.DueDate,
		Status:    models.FeePending,
	}
	if err := s.repo.Create(ctx, fee); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create fee record")
	}
	return fee, nil
}

// List returns fee records scoped by role: students see their own, admin
// sees everything. Records sort by due date, earliest first.
func (s *FeeService) List(ctx context.Context, callerID string, role models.UserRole) ([]models.FeeDetail, error) {
	var (
		fees []models.FeeDetail
		err  error
	)
	if role == models.RoleStudent {
		fees, err = s.repo.ListByStudent(ctx, callerID)
	} else {
		fees, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list fee records")
	}
	return fees, nil
}

// UpdateStatus marks a record paid or pending.
func (s *FeeService) UpdateStatus(ctx context.Context, id string, req models.FeeStatusRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	if !models.ValidFeeStatus(req.Status) {
		return appErrors.Clone(appErrors.ErrValidation, "unknown fee status")
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "fee record not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update fee record")
	}
	return nil
}

// Delete removes a fee record regardless of its payment state.
func (s *FeeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "fee record not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete fee record")
	}
	return nil
}
